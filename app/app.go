// Package app opens a window and feeds its mouse input to an input.Manager.
//
// The platform layer translates raw window callbacks into mouse events with an
// input.Tracker and posts them to the Manager returned by Interface.Input. The
// main loop flushes the Manager once per frame, so all mouse hooks run on the
// main thread.
package app

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/multierr"

	"github.com/db47h/rodent/input"
)

func init() {
	runtime.LockOSThread()
}

// Main creates the application window, then runs the main loop until the
// window is closed or ctx is done.
func Main(ctx context.Context, a Interface, opts ...WindowOption) (err error) {
	if err := drv.init(a, opts...); err != nil {
		return err
	}
	defer drv.terminate()
	if err := a.Init(drv.window()); err != nil {
		return err
	}
	err = drv.run(ctx)
	return multierr.Append(err, a.Terminate())
}

type Window interface {
	NativeHandle() interface{}
	// Size returns the size of the window framebuffer.
	Size() (width, height int)
	// Close requests the main loop to stop.
	Close()
	Destroy()
}

type driver interface {
	init(Interface, ...WindowOption) error
	terminate()
	run(context.Context) error
	window() Window
}

type Interface interface {
	Init(Window) error
	Terminate() error

	// Input returns the Manager that receives the window mouse events. It
	// is called once, before Init.
	Input() *input.Manager

	OnUpdate(time.Duration)
	OnDraw(w Window, frameTime, partialTimestep time.Duration)
}

type WindowOption interface {
	set(*winCfg)
}

type winCfg struct {
	fullScreen bool
	hidden     bool
	x, y, w, h int
	title      string
}

type winOption func(*winCfg)

func (f winOption) set(cfg *winCfg) {
	f(cfg)
}

func Title(title string) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.title = title
	})
}

func Pos(x, y int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.x, cfg.y = x, y
	})
}

func Size(w, h int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.w, cfg.h = w, h
	})
}

func FullScreen() WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.fullScreen = true
	})
}

func Visible(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.hidden = !b
	})
}

// FrameBufferSizeHandler is implemented by applications that want to be
// notified of framebuffer size changes, e.g. to keep a scene view centered.
type FrameBufferSizeHandler interface {
	OnFrameBufferSize(w Window, width, height int)
}
