package command

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"craniod/config"
	"craniod/eyes"
	"craniod/motion"
)

// fakeServos records actuation without hardware, rejecting invalid
// positions the way the Maestro driver does
type fakeServos struct {
	mu      sync.Mutex
	targets map[uint8]uint16
	homed   int
}

func newFakeServos() *fakeServos {
	return &fakeServos{targets: make(map[uint8]uint16)}
}

func (f *fakeServos) SetTarget(channel uint8, target uint16) error {
	if !config.IsValidPosition(channel, target) {
		return &invalidTargetError{channel, target}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets[channel] = target
	return nil
}

func (f *fakeServos) Home(channel uint8) error {
	r, ok := config.LookupRange(channel)
	if !ok {
		return &invalidTargetError{channel, 0}
	}
	return f.SetTarget(channel, r.Home)
}

func (f *fakeServos) HomeAll() error {
	f.mu.Lock()
	f.homed++
	f.mu.Unlock()
	for _, ch := range config.Channels() {
		if err := f.Home(ch); err != nil {
			return err
		}
	}
	return nil
}

type invalidTargetError struct {
	channel uint8
	target  uint16
}

func (e *invalidTargetError) Error() string {
	return "invalid target"
}

func newTestInterpreter() (*Interpreter, *fakeServos, *eyes.State) {
	servos := newFakeServos()
	eyeState := eyes.NewState()
	sched := motion.NewScheduler(servos, rand.New(rand.NewSource(1)))
	return NewInterpreter(sched, servos, eyeState), servos, eyeState
}

func TestExecuteMove(t *testing.T) {
	interp, servos, _ := newTestInterpreter()

	if got := interp.Execute("move 0 6000"); got != "ok" {
		t.Fatalf("reply = %q, want ok", got)
	}
	if servos.targets[config.PanChannel] != 6000 {
		t.Errorf("pan target = %d, want 6000", servos.targets[config.PanChannel])
	}

	// Out-of-range and unknown-channel moves are refused.
	if got := interp.Execute("move 0 100"); !strings.HasPrefix(got, "err:") {
		t.Errorf("out-of-range reply = %q", got)
	}
	if got := interp.Execute("move 9 6000"); !strings.HasPrefix(got, "err:") {
		t.Errorf("unknown-channel reply = %q", got)
	}
	if got := interp.Execute("move 0 nope"); !strings.HasPrefix(got, "err:") {
		t.Errorf("bad-number reply = %q", got)
	}
	if got := interp.Execute("move 0"); !strings.HasPrefix(got, "err:") {
		t.Errorf("missing-arg reply = %q", got)
	}
}

func TestExecuteEyes(t *testing.T) {
	interp, _, eyeState := newTestInterpreter()

	if got := interp.Execute("eyes -40 30"); got != "ok" {
		t.Fatalf("reply = %q, want ok", got)
	}
	if h, v := eyeState.Offset(); h != -40 || v != 30 {
		t.Errorf("offset = (%d, %d), want (-40, 30)", h, v)
	}

	if got := interp.Execute("eyes 61 0"); !strings.HasPrefix(got, "err:") {
		t.Errorf("out-of-bounds reply = %q", got)
	}
	// The rejected offset must not stick.
	if h, v := eyeState.Offset(); h != -40 || v != 30 {
		t.Errorf("offset changed by rejected command: (%d, %d)", h, v)
	}
}

func TestExecuteStartStop(t *testing.T) {
	interp, _, _ := newTestInterpreter()

	if got := interp.Execute("start"); got != "ok" {
		t.Fatalf("start reply = %q", got)
	}
	if got := interp.Execute("start"); !strings.HasPrefix(got, "err:") {
		t.Errorf("double start reply = %q", got)
	}
	if got := interp.Execute("stop"); got != "ok" {
		t.Fatalf("stop reply = %q", got)
	}
}

func TestExecuteModeAndTalk(t *testing.T) {
	interp, _, _ := newTestInterpreter()

	if got := interp.Execute("mode scripted"); got != "ok" {
		t.Fatalf("mode reply = %q", got)
	}
	if got := interp.Execute("status"); !strings.Contains(got, "mode=scripted") {
		t.Errorf("status = %q", got)
	}
	if got := interp.Execute("mode sideways"); !strings.HasPrefix(got, "err:") {
		t.Errorf("bad mode reply = %q", got)
	}

	if got := interp.Execute("mode dynamic"); got != "ok" {
		t.Fatalf("mode reply = %q", got)
	}
	if got := interp.Execute("talk start"); got != "ok" {
		t.Fatalf("talk start reply = %q", got)
	}
	if got := interp.Execute("status"); !strings.Contains(got, "talking=true") {
		t.Errorf("status = %q", got)
	}
	if got := interp.Execute("talk stop"); got != "ok" {
		t.Fatalf("talk stop reply = %q", got)
	}
}

func TestExecuteHome(t *testing.T) {
	interp, servos, _ := newTestInterpreter()

	if got := interp.Execute("home"); got != "ok" {
		t.Fatalf("home reply = %q", got)
	}
	if servos.homed != 1 {
		t.Errorf("homed %d times, want 1", servos.homed)
	}
	for _, ch := range config.Channels() {
		r, _ := config.LookupRange(ch)
		if servos.targets[ch] != r.Home {
			t.Errorf("channel %d at %d, want home %d", ch, servos.targets[ch], r.Home)
		}
	}
}

func TestExecuteUnknownAndEmpty(t *testing.T) {
	interp, _, _ := newTestInterpreter()

	if got := interp.Execute("levitate"); !strings.HasPrefix(got, "err:") {
		t.Errorf("unknown command reply = %q", got)
	}
	if got := interp.Execute(""); got != "" {
		t.Errorf("empty line reply = %q", got)
	}
	if got := interp.Execute("# comment"); got != "" {
		t.Errorf("comment reply = %q", got)
	}
}
