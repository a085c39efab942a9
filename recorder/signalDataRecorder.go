package recorder

import (
	"strconv"

	"crossroadSim/element"
)

var signalHeader = []string{"Tick", "From", "To", "Reason", "Duration Ms"}

// OnSignalChange 记录一次信号切换
func (r *Recorder) OnSignalChange(change element.SignalChange, tick int) {
	r.signalMu.Lock()
	defer r.signalMu.Unlock()
	r.signalCache = append(r.signalCache, []string{
		strconv.Itoa(tick),
		change.From.String(),
		change.To.String(),
		change.Reason.String(),
		strconv.FormatInt(change.Duration.Milliseconds(), 10),
	})
}

func (r *Recorder) writeSignalData() error {
	return writeCache(r.files.Signal, signalHeader, &r.signalMu, &r.signalCache)
}
