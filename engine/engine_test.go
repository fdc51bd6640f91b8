package engine

import "testing"

type nopRenderer struct{}

func (nopRenderer) Render(*Block) {}

func validConfig() Config {
	return Config{
		SampleRate:     44100,
		BufferSize:     256,
		Channels:       2,
		TriggerChannel: 0,
		PitchChannel:   1,
	}
}

func TestNewAcceptsValidLayout(t *testing.T) {
	e, err := New(validConfig(), nopRenderer{})
	if err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}

	if e.block.Trigger.Channel != 0 || e.block.Pitch.Channel != 1 {
		t.Errorf("domains wired to channels %d/%d, want 0/1",
			e.block.Trigger.Channel, e.block.Pitch.Channel)
	}
	if e.block.Trigger.Kind != KindDigital || e.block.Pitch.Kind != KindAnalog {
		t.Errorf("domain kinds = %v/%v", e.block.Trigger.Kind, e.block.Pitch.Kind)
	}
	if e.block.Trigger.SampleRate != 44100 || e.block.Pitch.SampleRate != 44100 {
		t.Errorf("domain rates = %g/%g", e.block.Trigger.SampleRate, e.block.Pitch.SampleRate)
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one channel", func(c *Config) { c.Channels = 1 }},
		{"trigger beyond channel count", func(c *Config) { c.TriggerChannel = 2 }},
		{"negative trigger channel", func(c *Config) { c.TriggerChannel = -1 }},
		{"pitch beyond channel count", func(c *Config) { c.PitchChannel = 2 }},
		{"negative pitch channel", func(c *Config) { c.PitchChannel = -1 }},
		{"trigger and pitch shared", func(c *Config) { c.PitchChannel = 0 }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -44100 }},
		{"zero buffer size", func(c *Config) { c.BufferSize = 0 }},
	}
	for _, c := range cases {
		cfg := validConfig()
		c.mutate(&cfg)
		if _, err := New(cfg, nopRenderer{}); err == nil {
			t.Errorf("%s: accepted", c.name)
		}
	}
}
