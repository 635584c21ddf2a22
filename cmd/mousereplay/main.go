// Command mousereplay runs a scripted sequence of raw mouse signals through
// the click and drag tracker and prints the hooks a listener would receive.
//
//	mousereplay [--config mouse.toml] [--coalesce] script.yaml
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/db47h/rodent/config"
	"github.com/db47h/rodent/input"
	"github.com/db47h/rodent/mouse"
	"github.com/db47h/rodent/replay"
)

type CLI struct {
	Script   string `arg:"" help:"YAML script to replay, - for stdin."`
	Config   string `help:"Mouse settings file (TOML or YAML)." type:"path"`
	Coalesce bool   `help:"Coalesce consecutive moves."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mousereplay"),
		kong.Description("Replay raw mouse input and print the resulting hook calls."),
		kong.UsageOnError(),
	)
	logger := golog.NewDevelopmentLogger("mousereplay")
	ctx.FatalIfErrorf(replayScript(&cli, os.Stdout, logger))
}

func replayScript(c *CLI, w io.Writer, logger golog.Logger) error {
	cfg := input.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = config.LoadFile(c.Config); err != nil {
			return err
		}
	}
	if c.Coalesce {
		cfg.CoalesceMoves = true
	}
	m, err := input.NewManager(logger, input.WithConfig(cfg))
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return errors.Wrap(err, "open script")
		}
		defer f.Close()
		r = f
	}
	s, err := replay.Parse(r)
	if err != nil {
		return err
	}

	rec := new(replay.Recorder)
	m.Add(rec)
	// flush before the queue overflows so that long scripts lose nothing.
	sink := input.SinkFunc(func(e mouse.Event) {
		if m.Pending() >= cfg.QueueSize {
			m.Flush()
		}
		m.Post(e)
	})
	replay.Run(s, input.NewTracker(sink, m.Config()), time.Now())
	m.Flush()

	for _, l := range rec.Lines() {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
