// Command flipbook is a minimal desktop shell for the drawing engine:
// a canvas window with keyboard tool switching, frame navigation,
// playback, melt and APNG export.
//
// Keys:
//
//	B/P/M/C/E  brush, pencil, marker, crayon, eraser
//	F/I        fill, color picker
//	1/2/3      active layer (background, middle, foreground)
//	[ ]        brush size down / up
//	N/D/X      new frame, duplicate frame, delete frame
//	Left/Right previous / next frame
//	Space      play / stop
//	O          onion skin on / off
//	W          melt the current frame into 10 new frames
//	S          export animation as APNG
//	Z/Y        undo / redo
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/flipbook"
)

const (
	canvasWidth  = 480
	canvasHeight = 360
	meltFrames   = 10
	exportPath   = "flipbook.png"
)

type app struct {
	session *flipbook.Session
	canvas  *ebiten.Image
	onion   bool
	drawing bool
}

func newApp() *app {
	store := flipbook.NewStore(canvasWidth, canvasHeight)
	session := flipbook.NewSession(store)
	session.OnColorPick(func(hex string) {
		slog.Info("picked color", "hex", hex)
		session.SetColor(flipbook.Hex(hex))
	})
	return &app{
		session: session,
		canvas:  ebiten.NewImage(canvasWidth, canvasHeight),
	}
}

func (a *app) Update() error {
	a.handleKeys()
	a.handleMouse()
	return nil
}

func (a *app) handleKeys() {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.SetTool(flipbook.BrushTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.SetTool(flipbook.PencilTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.SetTool(flipbook.MarkerTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.SetTool(flipbook.CrayonTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.SetTool(flipbook.EraserTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		s.SetTool(flipbook.FillTool{})
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.SetTool(flipbook.PickerTool{})
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		s.SetActiveLayer(flipbook.Background)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		s.SetActiveLayer(flipbook.Middle)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		s.SetActiveLayer(flipbook.Foreground)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		if size := s.Settings().Size - 2; size >= 2 {
			s.SetBrushSize(size)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.SetBrushSize(s.Settings().Size + 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.Store().InsertAfterCurrent()
		_ = s.SelectFrame(s.Store().CurrentIndex())
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.Store().DuplicateCurrent()
		_ = s.SelectFrame(s.Store().CurrentIndex())
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if err := s.Store().Delete(s.Store().CurrentIndex()); err != nil {
			if errors.Is(err, flipbook.ErrLastFrame) {
				slog.Warn("cannot delete the last frame")
			}
		} else {
			_ = s.SelectFrame(s.Store().CurrentIndex())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		if i := s.Store().CurrentIndex() - 1; i >= 0 {
			_ = s.SelectFrame(i)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		if i := s.Store().CurrentIndex() + 1; i < s.Store().Len() {
			_ = s.SelectFrame(i)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if s.Player().Playing() {
			s.Player().Stop()
			_ = s.SelectFrame(s.Store().CurrentIndex())
		} else {
			s.Player().Play()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.onion = !a.onion
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		s.StartMelt(context.Background(), meltFrames, func(frames []*flipbook.Frame, err error) {
			if err != nil {
				slog.Warn("melt failed", "err", err)
				return
			}
			slog.Info("melt inserted", "frames", len(frames))
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := flipbook.ExportAPNG(exportPath, s.Store(), s.Player().FPS()); err != nil {
			slog.Warn("export failed", "err", err)
		} else {
			slog.Info("exported animation", "path", exportPath)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		s.Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		s.Redo()
	}
}

func (a *app) handleMouse() {
	x, y := ebiten.CursorPosition()
	ev := flipbook.PointerEvent{X: float64(x), Y: float64(y), Type: flipbook.PointerMouse}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		a.drawing = true
		a.session.PointerDown(ev)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if a.drawing {
			a.drawing = false
			a.session.PointerUp(ev)
		}
	case a.drawing && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		a.session.PointerMove(ev)
	}
}

func (a *app) Draw(screen *ebiten.Image) {
	var pm *flipbook.Pixmap
	if a.onion && !a.session.Player().Playing() {
		pm = a.session.OnionSkin().Render()
	} else {
		pm = a.session.Store().Current().Composite()
	}
	a.canvas.WritePixels(pm.Data())
	screen.DrawImage(a.canvas, nil)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return canvasWidth, canvasHeight
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	flipbook.SetLogger(slog.Default())

	ebiten.SetWindowSize(canvasWidth*2, canvasHeight*2)
	ebiten.SetWindowTitle("flipbook")
	if err := ebiten.RunGame(newApp()); err != nil {
		slog.Error("shell exited", "err", err)
		os.Exit(1)
	}
}
