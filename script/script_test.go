package script

import (
	"strings"
	"testing"
	"time"

	"craniod/config"
)

const greetingYAML = `
name: greeting
steps:
  - servo: {channel: 0, position: 4416, hold_ms: 500}
  - eyes: {h: -40, v: 0, duration_ms: 300}
  - pause_ms: 250
  - servo: {channel: 2, position: 6528}
  - servo: {channel: 2, position: 5888}
`

func TestLoad(t *testing.T) {
	seq, err := Load([]byte(greetingYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if seq.Name != "greeting" {
		t.Errorf("name = %q", seq.Name)
	}
	if len(seq.Steps) != 5 {
		t.Fatalf("got %d steps, want 5", len(seq.Steps))
	}
	if seq.Steps[0].Servo == nil || seq.Steps[0].Servo.Position != config.PanLeft {
		t.Errorf("step 0 = %+v", seq.Steps[0])
	}
}

func TestLoadRejectsInvalidSteps(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"position out of range",
			"steps:\n  - servo: {channel: 0, position: 100}\n",
			"step 0",
		},
		{
			"unknown channel",
			"steps:\n  - servo: {channel: 9, position: 6000}\n",
			"step 0",
		},
		{
			"eye offset out of bounds",
			"steps:\n  - pause_ms: 100\n  - eyes: {h: 61, v: 0}\n",
			"step 1",
		},
		{
			"pause too short",
			"steps:\n  - pause_ms: 5\n",
			"step 0",
		},
		{
			"hold too long",
			"steps:\n  - servo: {channel: 0, position: 6000, hold_ms: 30001}\n",
			"step 0",
		},
		{
			"two actions in one step",
			"steps:\n  - servo: {channel: 0, position: 6000}\n    pause_ms: 100\n",
			"step 0",
		},
		{
			"empty sequence",
			"name: nothing\n",
			"no steps",
		},
	}

	for _, tc := range tests {
		_, err := Load([]byte(tc.yaml))
		if err == nil {
			t.Errorf("%s: Load succeeded", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

type recordedCall struct {
	channel uint8
	target  uint16
}

type fakeSinks struct {
	servoCalls []recordedCall
	eyeCalls   [][2]int16
	slept      time.Duration
}

func (f *fakeSinks) SetTarget(channel uint8, target uint16) error {
	f.servoCalls = append(f.servoCalls, recordedCall{channel, target})
	return nil
}

func (f *fakeSinks) SetOffset(h, v int16) error {
	f.eyeCalls = append(f.eyeCalls, [2]int16{h, v})
	return nil
}

func TestPlay(t *testing.T) {
	seq, err := Load([]byte(greetingYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sinks := &fakeSinks{}
	player := NewPlayer(sinks, sinks)
	player.sleep = func(d time.Duration) { sinks.slept += d }

	if err := player.Play(seq); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if len(sinks.servoCalls) != 3 {
		t.Errorf("servo calls = %d, want 3", len(sinks.servoCalls))
	}
	if sinks.servoCalls[0] != (recordedCall{config.PanChannel, config.PanLeft}) {
		t.Errorf("first servo call = %+v", sinks.servoCalls[0])
	}
	if len(sinks.eyeCalls) != 1 || sinks.eyeCalls[0] != [2]int16{-40, 0} {
		t.Errorf("eye calls = %v", sinks.eyeCalls)
	}

	// hold 500 + eye 300 + pause 250; the un-held jaw steps add nothing.
	if want := 1050 * time.Millisecond; sinks.slept != want {
		t.Errorf("slept %v, want %v", sinks.slept, want)
	}
}
