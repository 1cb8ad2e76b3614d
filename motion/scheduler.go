package motion

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"craniod/config"
)

// Mode is the skull's operating mode
type Mode uint8

const (
	ModeScripted Mode = iota // execute predefined sequences with precise timing
	ModeDynamic              // generate procedural movements from an envelope
)

func (m Mode) String() string {
	switch m {
	case ModeScripted:
		return "scripted"
	case ModeDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as used on the command wire
func ParseMode(name string) (Mode, error) {
	switch name {
	case "scripted":
		return ModeScripted, nil
	case "dynamic":
		return ModeDynamic, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", name)
	}
}

// Actuator is the actuation surface the scheduler drives. Satisfied by
// maestro.Controller.
type Actuator interface {
	SetTarget(channel uint8, target uint16) error
	Home(channel uint8) error
}

// LogWriter receives diagnostic lines from the scheduler goroutines
type LogWriter func(string)

// Scheduler owns the timing loop the config core deliberately does not:
// it runs procedural head movement in dynamic mode and jaw chatter while
// talking, and stays idle in scripted mode.
type Scheduler struct {
	mu  sync.Mutex
	act Actuator
	gen *Generator
	rng *rand.Rand

	mode    Mode
	running bool
	talking bool

	stopChan chan struct{}
	doneChan chan struct{}
	talkStop chan struct{}
	talkDone chan struct{}

	logw LogWriter
}

// NewScheduler creates a scheduler in dynamic mode, not running. Head
// movement uses the pan and nod channels; the jaw is reserved for
// talking.
func NewScheduler(act Actuator, rng *rand.Rand) *Scheduler {
	idle, _ := config.LookupEnvelope(config.ModeIdle)
	return &Scheduler{
		act:  act,
		gen:  NewGenerator(idle, []uint8{config.PanChannel, config.NodChannel}, rng),
		rng:  rng,
		mode: ModeDynamic,
		logw: func(string) {},
	}
}

// SetLogWriter redirects diagnostic output (default: discarded)
func (s *Scheduler) SetLogWriter(w LogWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w != nil {
		s.logw = w
	}
}

// logf emits a diagnostic line through the configured writer
func (s *Scheduler) logf(msg string) {
	s.mu.Lock()
	w := s.logw
	s.mu.Unlock()
	w(msg)
}

// Mode returns the current operating mode
func (s *Scheduler) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Running reports whether the procedural loop is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Talking reports whether jaw chatter is active
func (s *Scheduler) Talking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.talking
}

// SetMode switches between scripted and dynamic operation. The
// procedural loop must be stopped first.
func (s *Scheduler) SetMode(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("stop before changing mode")
	}
	s.mode = mode
	return nil
}

// Start begins procedural movement. Only meaningful in dynamic mode;
// scripted sequences are driven externally by the script player.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("already running")
	}
	if s.mode != ModeDynamic {
		return errors.New("start requires dynamic mode")
	}

	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.running = true
	go s.run(s.stopChan, s.doneChan)
	return nil
}

// Stop halts procedural movement and talking and homes every channel
func (s *Scheduler) Stop() error {
	s.stopTalk()

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	stop, done := s.stopChan, s.doneChan
	s.running = false
	s.mu.Unlock()

	close(stop)
	<-done

	for _, ch := range config.Channels() {
		if err := s.act.Home(ch); err != nil {
			s.logf(fmt.Sprintf("[sched] home channel %d: %v", ch, err))
		}
	}
	return nil
}

// TalkStart switches head movement to the talking envelope and starts
// jaw chatter. Works whether or not the procedural loop is running.
func (s *Scheduler) TalkStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.talking {
		return nil
	}

	env, ok := config.LookupEnvelope(config.ModeTalking)
	if !ok {
		return errors.New("talking envelope not configured")
	}
	s.gen.SetEnvelope(env)

	s.talkStop = make(chan struct{})
	s.talkDone = make(chan struct{})
	s.talking = true
	// Own rand source: the head loop draws from s.rng under the lock,
	// which this goroutine must not contend for.
	talkRNG := rand.New(rand.NewSource(s.rng.Int63()))
	go s.talkRun(env, talkRNG, s.talkStop, s.talkDone)
	return nil
}

// TalkStop ends jaw chatter, closes the jaw and restores the idle
// envelope
func (s *Scheduler) TalkStop() error {
	s.stopTalk()
	return nil
}

// stopTalk tears down the talk goroutine. The wait happens outside the
// lock because the goroutine takes it to log.
func (s *Scheduler) stopTalk() {
	s.mu.Lock()
	if !s.talking {
		s.mu.Unlock()
		return
	}
	stop, done := s.talkStop, s.talkDone
	s.talking = false
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	idle, _ := config.LookupEnvelope(config.ModeIdle)
	s.gen.SetEnvelope(idle)
	s.mu.Unlock()

	if err := s.act.SetTarget(config.JawChannel, config.JawClosed); err != nil {
		s.logf(fmt.Sprintf("[sched] close jaw: %v", err))
	}
}

// run is the procedural head-movement loop
func (s *Scheduler) run(stop, done chan struct{}) {
	defer close(done)

	for {
		s.mu.Lock()
		mv := s.gen.Next()
		s.mu.Unlock()

		if !sleepOrStop(mv.Delay, stop) {
			return
		}
		if err := s.act.SetTarget(mv.Channel, mv.Target); err != nil {
			// Rejected targets are diagnosed here, at the call site.
			s.logf(fmt.Sprintf("[sched] channel %d target %d: %v", mv.Channel, mv.Target, err))
		}
		if !sleepOrStop(mv.Hold, stop) {
			return
		}
	}
}

// talkRun flaps the jaw between closed and an intensity-scaled opening
// while talking. Cadence comes from the envelope's hold bounds.
func (s *Scheduler) talkRun(env config.MovementEnvelope, rng *rand.Rand, stop, done chan struct{}) {
	defer close(done)

	r, ok := config.LookupRange(config.JawChannel)
	if !ok {
		return
	}
	reach := uint16(env.Intensity * float64(r.Max-r.Home))

	for {
		opening := r.Home + uint16(rng.Float64()*float64(reach))
		if err := s.act.SetTarget(config.JawChannel, opening); err != nil {
			s.logf(fmt.Sprintf("[sched] jaw open %d: %v", opening, err))
		}
		if !sleepOrStop(uniformDuration(rng, env.MinHold, env.MaxHold), stop) {
			return
		}

		if err := s.act.SetTarget(config.JawChannel, r.Home); err != nil {
			s.logf(fmt.Sprintf("[sched] jaw close: %v", err))
		}
		if !sleepOrStop(uniformDuration(rng, env.MinHold, env.MaxHold), stop) {
			return
		}
	}
}

// sleepOrStop waits for d or until stop closes; false means stopped
func sleepOrStop(d time.Duration, stop chan struct{}) bool {
	select {
	case <-time.After(d):
		return true
	case <-stop:
		return false
	}
}

// uniformDuration draws from the closed millisecond range [min, max]
func uniformDuration(rng *rand.Rand, min, max uint32) time.Duration {
	ms := min
	if max > min {
		ms += uint32(rng.Int63n(int64(max-min) + 1))
	}
	return time.Duration(ms) * time.Millisecond
}
