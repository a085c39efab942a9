package utils

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Job 是提交到工作池的任务，ctx在工作池取消时结束
type Job func(ctx context.Context) error

// WorkerPool 表示一个工作池
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex // 保护closed与关闭jobs通道
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewWorkerPool 创建一个新的工作池并启动工作协程
// workers不大于0时使用GOMAXPROCS
func NewWorkerPool(ctx context.Context, workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	pool := &WorkerPool{
		jobs:    make(chan Job, workers*2), // 缓冲区大小为工作者数量的2倍
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
	pool.start()
	return pool
}

// Workers 返回工作协程数量
func (p *WorkerPool) Workers() int {
	return p.workers
}

func (p *WorkerPool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				// 取消后只排空队列，不再执行任务
				if p.ctx.Err() != nil {
					continue
				}
				if err := job(p.ctx); err != nil {
					p.addError(err)
				}
			}
		}()
	}
}

func (p *WorkerPool) addError(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	p.errs = append(p.errs, err)
}

// Submit 提交一个任务到工作池
// 如果工作池已关闭或已取消，返回false，否则返回true
func (p *WorkerPool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Cancel 取消工作池，正在执行的任务通过ctx感知，队列中的任务不再执行
func (p *WorkerPool) Cancel() {
	p.cancel()
}

// Stop 停止接收新任务，等待已提交的任务全部完成
// 返回所有任务的错误，工作池被取消时包含取消原因
func (p *WorkerPool) Stop() error {
	p.mu.Lock()
	first := !p.closed
	if first {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	// 等待所有工作协程完成
	p.wg.Wait()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	if first {
		if err := p.ctx.Err(); err != nil {
			p.errs = append(p.errs, err)
		}
		p.cancel()
	}
	return errors.Join(p.errs...)
}
