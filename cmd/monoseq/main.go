package main

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"monoseq/clock"
	"monoseq/config"
	"monoseq/debug"
	"monoseq/engine"
	"monoseq/grid"
	"monoseq/scale"
	"monoseq/sequencer"
	"monoseq/theme"
	"monoseq/tui"
)

// displayFPS is the physical LED refresh rate
const displayFPS = 30

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "monoseq",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			logger.Warn("trace log unavailable", "err", err)
		}
		defer debug.Disable()
	}

	sc, err := scale.Parse(cfg.Scale)
	if err != nil {
		logger.Fatal("parse scale", "scale", cfg.Scale, "err", err)
	}

	// shared clock: written by the render plane, read everywhere
	clkWriter, clkReader := clock.New(cfg.Tempo, cfg.Audio.SampleRate)

	sender, msgs := sequencer.NewQueue()

	vgrid, err := sequencer.NewVirtualGrid(cfg.Width, sc, cfg.Tune)
	if err != nil {
		logger.Fatal("create grid", "err", err)
	}
	control := sequencer.NewControl(vgrid, sender, clkReader, cfg.Tune, logger)
	renderer := sequencer.NewRenderer(msgs, clkWriter, clkReader, cfg.Width, cfg.Tune.GateMillis)

	// validate the output port layout before anything real-time runs
	channels := cfg.Audio.TriggerChannel + 1
	if cfg.Audio.PitchChannel >= channels {
		channels = cfg.Audio.PitchChannel + 1
	}
	if channels < 2 {
		channels = 2
	}
	eng, err := engine.New(engine.Config{
		SampleRate:     cfg.Audio.SampleRate,
		BufferSize:     cfg.Audio.BufferSize,
		Channels:       channels,
		TriggerChannel: cfg.Audio.TriggerChannel,
		PitchChannel:   cfg.Audio.PitchChannel,
	}, renderer)
	if err != nil {
		logger.Fatal("audio setup", "err", err)
	}
	if err := eng.Start(); err != nil {
		logger.Fatal("audio start", "err", err)
	}
	defer eng.Stop()

	logger.Info("running",
		"scale", sc.Name(),
		"tempo", cfg.Tempo,
		"steps", cfg.Width,
		"sampleRate", cfg.Audio.SampleRate)

	manager := grid.NewManager(cfg.Grid.PortName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Run(ctx)

	palette := theme.Varibright()
	if cfg.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.Palette); err != nil {
			logger.Warn("palette unavailable, using default", "path", cfg.Palette, "err", err)
			palette = theme.Varibright()
		}
	}

	p := tea.NewProgram(tui.NewModel(control, theme.New(palette)), tea.WithAltScreen())

	// device events: pump pad input into the control plane, tell the TUI
	go func() {
		for ev := range manager.Events() {
			p.Send(tui.DeviceEventMsg(ev))
			if ev.Type != grid.DeviceConnected {
				continue
			}
			logger.Info("grid connected", "id", ev.ID)
			go func(c grid.Controller) {
				for pad := range c.Events() {
					control.HandlePad(pad.X, pad.Y, pad.Down)
				}
			}(ev.Controller)
		}
	}()

	// display refresh: the control plane assembles the frame, the
	// transport diffs it onto the surface
	go func() {
		ticker := time.NewTicker(time.Second / displayFPS)
		defer ticker.Stop()
		var frame sequencer.Display
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c := manager.First()
				if c == nil {
					continue
				}
				control.RenderDisplay(&frame)
				if err := c.SetFrame((*grid.Frame)(&frame)); err != nil {
					debug.Log("led", "frame send failed: %v", err)
				}
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		logger.Error("ui", "err", err)
	}

	// the render side now sees a disconnect and keeps playing its
	// last-known state until the engine stops
	sender.Close()
}
