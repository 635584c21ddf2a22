package app

import (
	"context"
	"time"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/pkg/errors"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/input"
	"github.com/db47h/rodent/loop"
	"github.com/db47h/rodent/mouse"
)

func DriverVersion() string {
	return "GLFW " + glfw.GetVersionString()
}

var drv driver = new(glfwDriver)

type glfwDriver struct {
	w       *window
	a       Interface
	input   *input.Manager
	tracker *input.Tracker
	loop    loop.FixedStep
}

func (d *glfwDriver) init(a Interface, opts ...WindowOption) error {
	m := a.Input()
	if m == nil {
		return errors.New("app: nil input manager")
	}
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "init glfw")
	}
	d.a = a
	d.input = m
	d.tracker = input.NewTracker(m, m.Config())

	glfw.WindowHint(glfw.Samples, 4)

	if err := d.createWindow(opts...); err != nil {
		glfw.Terminate()
		return err
	}

	// setup callbacks
	w := d.w
	if h, ok := a.(FrameBufferSizeHandler); ok {
		w.onFrameBufferSize = h
	}
	w.glfw.SetMouseButtonCallback(d.glfwMouseButtonCallback)
	w.glfw.SetCursorPosCallback(d.glfwCursorPosCallback)
	w.glfw.SetScrollCallback(d.glfwScrollCallback)
	w.glfw.SetCursorEnterCallback(d.glfwCursorEnterCallback)
	w.glfw.SetKeyCallback(d.glfwKeyCallback)
	w.glfw.SetFocusCallback(d.glfwFocusCallback)

	return nil
}

func (d *glfwDriver) terminate() {
	glfw.Terminate()
}

func (d *glfwDriver) createWindow(opts ...WindowOption) error {
	cfg := winCfg{title: "rodent Window", x: -1, y: -1, w: 800, h: 600}
	for _, o := range opts {
		o.set(&cfg)
	}

	var (
		monitor *glfw.Monitor
		width   = cfg.w
		height  = cfg.h
	)
	if cfg.fullScreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width = mode.Width
		height = mode.Height
	}
	if cfg.hidden || (!cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0) {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	w, err := glfw.CreateWindow(width, height, cfg.title, monitor, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	if !cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0 {
		w.SetPos(cfg.x, cfg.y)
		if !cfg.hidden {
			w.Show()
		}
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	fw, fh := w.GetFramebufferSize()
	d.w = &window{glfw: w, width: fw, height: fh}
	w.SetFramebufferSizeCallback(d.w.glfwFrameBufferSizeCallback)

	return nil
}

func (d *glfwDriver) run(ctx context.Context) error {
	return d.loop.Run(ctx, d)
}

func (d *glfwDriver) window() Window {
	return d.w
}

// ProcessEvents swaps buffers, polls glfw and delivers the resulting mouse
// events.
func (d *glfwDriver) ProcessEvents() bool {
	w := d.w
	w.glfw.SwapBuffers()
	glfw.PollEvents()
	d.input.Flush()
	return w.glfw.ShouldClose()
}

func (d *glfwDriver) Update(dt time.Duration) {
	d.a.OnUpdate(dt)
}

func (d *glfwDriver) Draw(frameTime, partialTimestep time.Duration) {
	d.a.OnDraw(d.w, frameTime, partialTimestep)
}

func (d *glfwDriver) glfwMouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwButton(button)
	switch action {
	case glfw.Press:
		d.tracker.ButtonDown(b, glfwMods(mods), time.Now())
	case glfw.Release:
		d.tracker.ButtonUp(b, glfwMods(mods), time.Now())
	}
}

func (d *glfwDriver) glfwCursorPosCallback(_ *glfw.Window, x, y float64) {
	d.tracker.CursorMoved(rodent.Pt(x, y), time.Now())
}

func (d *glfwDriver) glfwScrollCallback(_ *glfw.Window, xoff, yoff float64) {
	d.tracker.Scrolled(xoff, yoff, time.Now())
}

func (d *glfwDriver) glfwCursorEnterCallback(_ *glfw.Window, entered bool) {
	d.tracker.CursorEntered(entered, time.Now())
}

func (d *glfwDriver) glfwKeyCallback(_ *glfw.Window, _ glfw.Key, _ int, _ glfw.Action, mods glfw.ModifierKey) {
	d.tracker.SetModifiers(glfwMods(mods))
}

// releases are not reported while the window is unfocused.
func (d *glfwDriver) glfwFocusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		d.tracker.Reset()
	}
}

func glfwButton(b glfw.MouseButton) mouse.Button {
	if b < glfw.MouseButton1 || b > glfw.MouseButton8 {
		return mouse.ButtonNone
	}
	// glfw orders buttons left, right, middle, like mouse.Button.
	return mouse.ButtonLeft + mouse.Button(b-glfw.MouseButton1)
}

func glfwMods(m glfw.ModifierKey) mouse.Modifier {
	var mods mouse.Modifier
	if m&glfw.ModShift != 0 {
		mods |= mouse.ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= mouse.ModControl
	}
	if m&glfw.ModAlt != 0 {
		mods |= mouse.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= mouse.ModSuper
	}
	return mods
}

type window struct {
	glfw              *glfw.Window
	width, height     int
	onFrameBufferSize FrameBufferSizeHandler
}

func (w *window) NativeHandle() interface{} {
	return w.glfw
}

func (w *window) Size() (width, height int) {
	return w.width, w.height
}

func (w *window) Close() {
	w.glfw.SetShouldClose(true)
}

func (w *window) Destroy() {
	w.glfw.Destroy()
}

func (w *window) glfwFrameBufferSizeCallback(_ *glfw.Window, width int, height int) {
	w.width, w.height = width, height
	if h := w.onFrameBufferSize; h != nil {
		h.OnFrameBufferSize(w, width, height)
	}
}
