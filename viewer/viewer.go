// Package viewer 用ebiten绘制路口、信号灯和车辆，并把键盘输入转换为生成请求
package viewer

import (
	"fmt"
	"image/color"

	"crossroadSim/config"
	"crossroadSim/element"
	"crossroadSim/simulator"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	grassColor   = color.RGBA{34, 85, 34, 255}
	roadColor    = color.RGBA{60, 60, 60, 255}
	markColor    = color.RGBA{230, 230, 230, 255}
	dividerColor = color.RGBA{240, 200, 40, 255}
	redColor     = color.RGBA{220, 30, 30, 255}
	greenColor   = color.RGBA{30, 200, 60, 255}
	hudColor     = color.RGBA{255, 255, 255, 255}
)

// spawnKeys 方向键按车辆的行驶方向生成车辆：↑ 从南侧驶入向北行驶
var spawnKeys = []struct {
	key      ebiten.Key
	approach element.Approach
}{
	{ebiten.KeyArrowUp, element.South},
	{ebiten.KeyArrowDown, element.North},
	{ebiten.KeyArrowLeft, element.East},
	{ebiten.KeyArrowRight, element.West},
}

// Game 实现 ebiten.Game 接口
type Game struct {
	world  *simulator.World
	demand *simulator.Demand
	layout element.Layout

	background *ebiten.Image
	pixel      *ebiten.Image
	face       text.Face
}

// NewGame 创建界面，所有尺寸取自世界的几何布局
func NewGame(world *simulator.World, demand *simulator.Demand) *Game {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &Game{
		world:  world,
		demand: demand,
		layout: world.Layout(),
		pixel:  pixel,
		face:   text.NewGoXFace(bitmapfont.Face),
	}
	g.background = g.renderBackground()
	return g
}

// Run 打开窗口并运行到按下Esc或关闭窗口
func Run(cfg *config.Config, world *simulator.World, demand *simulator.Demand) error {
	layout := world.Layout()
	ebiten.SetWindowSize(int(layout.Width), int(layout.Height))
	ebiten.SetWindowTitle(cfg.Viewer.Title)
	ebiten.SetTPS(cfg.Simulation.TickRate)
	return ebiten.RunGame(NewGame(world, demand))
}

// Update 处理输入并推进一个时间步
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 按住方向键时按冷却时间连续生成
	for _, sk := range spawnKeys {
		if ebiten.IsKeyPressed(sk.key) {
			g.demand.Request(sk.approach)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyR) {
		g.demand.SpawnRandom()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.demand.Toggle()
	}

	g.demand.Step()
	g.world.Tick()
	return nil
}

// Draw 绘制一帧
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.background, &ebiten.DrawImageOptions{})
	g.drawSignals(screen)

	size := g.layout.VehicleSize
	for _, v := range g.world.Vehicles() {
		g.fillRect(screen, v.Position.X, v.Position.Y, size, size, turnColor(v.Turn))
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, hudLine(g.world, g.demand.Enabled()), g.face, op)
}

// Layout 返回固定的逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(g.layout.Width), int(g.layout.Height)
}

func (g *Game) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(g.pixel, op)
}

// renderBackground 预先绘制道路、车道分隔线和停车线
func (g *Game) renderBackground() *ebiten.Image {
	l := g.layout
	bg := ebiten.NewImage(int(l.Width), int(l.Height))
	bg.Fill(grassColor)

	g.fillRect(bg, l.RoadX, 0, l.RoadWidth, l.Height, roadColor)
	g.fillRect(bg, 0, l.RoadY, l.Width, l.RoadWidth, roadColor)

	// 中心虚线，路口内不画
	const dash, line = 20.0, 2.0
	midX := l.RoadX + l.RoadWidth/2
	midY := l.RoadY + l.RoadWidth/2
	for y := 0.0; y < l.Height; y += dash * 2 {
		if y+dash > l.RoadY && y < l.RoadY+l.RoadWidth {
			continue
		}
		g.fillRect(bg, midX-line/2, y, line, dash, dividerColor)
	}
	for x := 0.0; x < l.Width; x += dash * 2 {
		if x+dash > l.RoadX && x < l.RoadX+l.RoadWidth {
			continue
		}
		g.fillRect(bg, x, midY-line/2, dash, line, dividerColor)
	}

	// 停车线画在各方向驶入车道一侧的路口边界上
	half := l.RoadWidth / 2
	in := l.Intersection
	g.fillRect(bg, in.Min.X, in.Min.Y-line*2, half, line*2, markColor)
	g.fillRect(bg, in.Min.X+half, in.Max.Y, half, line*2, markColor)
	g.fillRect(bg, in.Max.X, in.Min.Y, line*2, half, markColor)
	g.fillRect(bg, in.Min.X-line*2, in.Min.Y+half, line*2, half, markColor)
	return bg
}

// drawSignals 在每个驶入方向的路口角上绘制信号灯，全红时全部为红色
func (g *Game) drawSignals(screen *ebiten.Image) {
	const size, margin = 12.0, 4.0
	in := g.layout.Intersection
	heads := map[element.Approach][2]float64{
		element.North: {in.Min.X - size - margin, in.Min.Y - size - margin},
		element.South: {in.Max.X + margin, in.Max.Y + margin},
		element.East:  {in.Max.X + margin, in.Min.Y - size - margin},
		element.West:  {in.Min.X - size - margin, in.Max.Y + margin},
	}
	signal := g.world.Signal()
	for a, pos := range heads {
		g.fillRect(screen, pos[0], pos[1], size, size, signalColor(signal, a))
	}
}

// turnColor 按转向区分车辆颜色
func turnColor(t element.Turn) color.RGBA {
	switch t {
	case element.Left:
		return color.RGBA{255, 220, 0, 255}
	case element.Right:
		return color.RGBA{0, 220, 255, 255}
	default:
		return color.RGBA{220, 0, 220, 255}
	}
}

func signalColor(s element.Signal, a element.Approach) color.RGBA {
	if s.Allows(a) {
		return greenColor
	}
	return redColor
}

func hudLine(w *simulator.World, generating bool) string {
	gen := "off"
	if generating {
		gen = "on"
	}
	return fmt.Sprintf("Signal: %s %.1fs/%.1fs  Vehicles: %d  Tick: %d  Generation: %s",
		w.Signal(), w.PhaseElapsed().Seconds(), w.PhaseDuration().Seconds(),
		w.VehicleCount(), w.TickCount(), gen)
}
