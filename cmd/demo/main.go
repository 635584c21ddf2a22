// Command demo opens a window with two scenes: a menu with a play button and a
// world that can be panned by dragging and zoomed with the mouse wheel.
package main

import (
	"context"
	"image"
	"time"

	"github.com/alecthomas/kong"
	"github.com/edaniels/golog"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/app"
	"github.com/db47h/rodent/config"
	"github.com/db47h/rodent/input"
	"github.com/db47h/rodent/mouse"
	"github.com/db47h/rodent/scene"
)

type CLI struct {
	Config     string `help:"Mouse settings file (TOML or YAML)." type:"path"`
	Title      string `help:"Window title." default:"rodent demo"`
	Width      int    `help:"Window width." default:"800"`
	Height     int    `help:"Window height." default:"600"`
	FullScreen bool   `help:"Run full screen."`
	Verbose    bool   `short:"v" help:"Log every mouse event."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("demo"),
		kong.Description("Mouse listener demo."),
		kong.UsageOnError(),
	)
	logger := golog.NewDevelopmentLogger("demo")
	ctx.FatalIfErrorf(run(&cli, logger))
}

func run(cli *CLI, logger golog.Logger) error {
	cfg := input.DefaultConfig()
	if cli.Config != "" {
		var err error
		if cfg, err = config.LoadFile(cli.Config); err != nil {
			return err
		}
	}
	m, err := input.NewManager(logger, input.WithConfig(cfg))
	if err != nil {
		return err
	}

	d := newDemo(m, logger)
	if cli.Verbose {
		m.Add(&eventLogger{logger: logger})
	}

	opts := []app.WindowOption{app.Title(cli.Title), app.Size(cli.Width, cli.Height)}
	if cli.FullScreen {
		opts = append(opts, app.FullScreen())
	}
	logger.Infow("starting", "driver", app.DriverVersion())
	return app.Main(context.Background(), d, opts...)
}

type demo struct {
	input  *input.Manager
	logger golog.Logger
	stage  scene.Stage
	menu   *scene.Scene
	world  *scene.Scene
	win    app.Window
	stats  time.Duration
}

func newDemo(m *input.Manager, logger golog.Logger) *demo {
	d := &demo{
		input:  m,
		logger: logger,
		menu:   scene.New("menu"),
		world:  scene.New("world"),
	}

	d.menu.AddRegion(image.Rect(300, 250, 500, 350), &playButton{d: d})
	d.world.AddListener(&panZoom{view: &d.world.View})
	d.world.AddListener(&mouse.Funcs{
		Clicked: func(e mouse.Event) {
			if e.Button == mouse.ButtonRight {
				d.switchTo("menu")
			}
		},
	})
	// The stage was just created, Add cannot fail.
	_ = d.stage.Add(d.menu)
	_ = d.stage.Add(d.world)
	m.Add(&d.stage)
	return d
}

func (d *demo) switchTo(name string) {
	if err := d.stage.Switch(name); err != nil {
		d.logger.Errorw("scene switch failed", "scene", name, "error", err)
		return
	}
	d.logger.Infow("scene switched", "scene", name)
}

func (d *demo) Init(w app.Window) error {
	d.win = w
	return nil
}

func (d *demo) Terminate() error {
	s := d.input.Stats()
	d.logger.Infow("input stats",
		"dispatched", s.Dispatched,
		"dropped", s.Dropped,
		"failures", s.Failures,
		"average", s.Average)
	return nil
}

func (d *demo) Input() *input.Manager { return d.input }

func (d *demo) OnUpdate(dt time.Duration) {
	d.stats += dt
	if d.stats >= 10*time.Second {
		d.stats = 0
		s := d.input.Stats()
		d.logger.Debugw("input stats", "average", s.Average, "per_second", s.PerSecond)
	}
}

func (d *demo) OnDraw(app.Window, time.Duration, time.Duration) {}

func (d *demo) OnFrameBufferSize(_ app.Window, width, height int) {
	c := d.world.View.ScreenToWorld(rodent.PtI(width, height).Div(2))
	d.world.View.CenterOn(c.X, c.Y, width, height)
}

// playButton switches to the world scene when clicked.
type playButton struct {
	mouse.NopListener
	d *demo
}

func (b *playButton) OnEntersArea(mouse.Event) { b.d.logger.Debug("play: hover") }
func (b *playButton) OnExitsArea(mouse.Event)  { b.d.logger.Debug("play: leave") }

func (b *playButton) OnClicked(e mouse.Event) {
	if e.Button == mouse.ButtonLeft {
		b.d.switchTo("world")
	}
}

// panZoom moves the view while dragging with the left button and zooms with
// the wheel.
type panZoom struct {
	mouse.NopListener
	view   *rodent.View
	anchor rodent.Point // world point under the pointer when the drag started
}

func (p *panZoom) OnPressed(e mouse.Event) {
	if e.Button == mouse.ButtonLeft {
		p.anchor = e.World
	}
}

func (p *panZoom) OnDragged(e mouse.Event) {
	if !e.Buttons.Has(mouse.ButtonLeft) {
		return
	}
	// e.World was computed with the current view: shift the view so that the
	// anchor sits under the pointer again.
	p.view.Origin = p.view.Origin.Add(p.anchor).Sub(e.World)
}

func (p *panZoom) OnWheelScrolled(e mouse.Event) {
	if p.view.Zoom == 0 {
		p.view.Zoom = 1
	}
	p.view.Zoom *= 1 + e.Wheel.Y/16
}

type eventLogger struct {
	mouse.NopListener
	logger golog.Logger
}

func (l *eventLogger) OnPressed(e mouse.Event) {
	l.logger.Debugw("pressed", "button", e.Button, "pos", e.Pos)
}

func (l *eventLogger) OnReleased(e mouse.Event) {
	l.logger.Debugw("released", "button", e.Button, "pos", e.Pos)
}

func (l *eventLogger) OnClicked(e mouse.Event) {
	l.logger.Debugw("clicked", "button", e.Button, "clicks", e.Clicks, "pos", e.Pos)
}

func (l *eventLogger) OnWheelScrolled(e mouse.Event) {
	l.logger.Debugw("wheel", "delta", e.Wheel, "pos", e.Pos)
}

func (l *eventLogger) OnEntersArea(e mouse.Event) { l.logger.Debugw("entered window", "pos", e.Pos) }
func (l *eventLogger) OnExitsArea(e mouse.Event)  { l.logger.Debugw("left window", "pos", e.Pos) }
