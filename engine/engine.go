// Package engine hosts the real-time render callback on a portaudio
// output stream. It validates the output port layout before the stream is
// allowed to start and hands the renderer a per-block view of the output
// buffers; everything musical happens in the renderer.
package engine

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DomainKind distinguishes the two output signal families
type DomainKind int

const (
	KindDigital DomainKind = iota // gate/trigger pulses
	KindAnalog                    // continuous control voltage
)

func (k DomainKind) String() string {
	if k == KindDigital {
		return "digital"
	}
	return "analog"
}

// Domain is one output signal path: its kind, its sample rate, and the
// stream channel it writes to. Rates may differ per domain on hardware
// with split digital/analog clocks, so the renderer sweeps each domain
// independently.
type Domain struct {
	Kind       DomainKind
	SampleRate float64
	Channel    int
}

// Block is the per-callback view handed to the renderer: the frame count,
// the two output domains, and the raw channel-major sample buffers.
type Block struct {
	Frames  int
	Trigger Domain
	Pitch   Domain
	Out     [][]float32
}

// Renderer runs inside the audio callback. It must not allocate or block.
type Renderer interface {
	Render(b *Block)
}

// Config describes the stream to open
type Config struct {
	SampleRate     int
	BufferSize     int
	Channels       int // total output channels on the stream
	TriggerChannel int
	PitchChannel   int
}

// Engine owns the portaudio stream lifecycle
type Engine struct {
	cfg      Config
	renderer Renderer
	stream   *portaudio.Stream
	block    Block
}

// New validates the port assignment and prepares the engine. A bad layout
// is fatal here, before any real-time work starts.
func New(cfg Config, r Renderer) (*Engine, error) {
	if cfg.Channels < 2 {
		return nil, fmt.Errorf("engine: need at least 2 output channels, have %d", cfg.Channels)
	}
	if cfg.TriggerChannel < 0 || cfg.TriggerChannel >= cfg.Channels {
		return nil, fmt.Errorf("engine: trigger channel %d out of range [0,%d)", cfg.TriggerChannel, cfg.Channels)
	}
	if cfg.PitchChannel < 0 || cfg.PitchChannel >= cfg.Channels {
		return nil, fmt.Errorf("engine: pitch channel %d out of range [0,%d)", cfg.PitchChannel, cfg.Channels)
	}
	if cfg.TriggerChannel == cfg.PitchChannel {
		return nil, fmt.Errorf("engine: trigger and pitch share channel %d", cfg.TriggerChannel)
	}
	if cfg.SampleRate <= 0 || cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("engine: bad stream shape %d Hz / %d frames", cfg.SampleRate, cfg.BufferSize)
	}

	e := &Engine{cfg: cfg, renderer: r}
	e.block.Trigger = Domain{Kind: KindDigital, SampleRate: float64(cfg.SampleRate), Channel: cfg.TriggerChannel}
	e.block.Pitch = Domain{Kind: KindAnalog, SampleRate: float64(cfg.SampleRate), Channel: cfg.PitchChannel}
	return e, nil
}

// Start opens the output stream and begins calling the renderer.
func (e *Engine) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("engine: init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(
		0, e.cfg.Channels,
		float64(e.cfg.SampleRate), e.cfg.BufferSize,
		e.callback,
	)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("engine: open stream: %w", err)
	}
	e.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("engine: start stream: %w", err)
	}
	return nil
}

// callback is the hard real-time path. It only repoints the block view at
// the host buffers; no allocation.
func (e *Engine) callback(out [][]float32) {
	e.block.Frames = len(out[0])
	e.block.Out = out
	e.renderer.Render(&e.block)
}

// Stop halts and closes the stream.
func (e *Engine) Stop() error {
	if e.stream == nil {
		return nil
	}
	err := e.stream.Stop()
	if cerr := e.stream.Close(); err == nil {
		err = cerr
	}
	e.stream = nil
	portaudio.Terminate()
	return err
}
