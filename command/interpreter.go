package command

import (
	"fmt"
	"strconv"

	"craniod/eyes"
	"craniod/motion"
)

// Servos is the actuation surface the interpreter drives. Satisfied by
// maestro.Controller.
type Servos interface {
	SetTarget(channel uint8, target uint16) error
	Home(channel uint8) error
	HomeAll() error
}

// Interpreter executes parsed commands against the running system
type Interpreter struct {
	sched  *motion.Scheduler
	servos Servos
	eyes   *eyes.State
}

// NewInterpreter wires the interpreter to its collaborators
func NewInterpreter(sched *motion.Scheduler, servos Servos, eyeState *eyes.State) *Interpreter {
	return &Interpreter{
		sched:  sched,
		servos: servos,
		eyes:   eyeState,
	}
}

// Execute runs one command line and returns the reply line. Empty input
// returns an empty reply and no action.
func (i *Interpreter) Execute(line string) string {
	cmd, err := Parse(line)
	if err != nil {
		return "err: " + err.Error()
	}
	if cmd == nil {
		return ""
	}

	switch cmd.Name {
	case "start":
		return reply(i.sched.Start())

	case "stop":
		i.eyes.Center()
		return reply(i.sched.Stop())

	case "mode":
		if len(cmd.Args) != 1 {
			return "err: usage: mode scripted|dynamic"
		}
		mode, err := motion.ParseMode(cmd.Args[0])
		if err != nil {
			return "err: " + err.Error()
		}
		return reply(i.sched.SetMode(mode))

	case "talk":
		if len(cmd.Args) != 1 {
			return "err: usage: talk start|stop"
		}
		switch cmd.Args[0] {
		case "start":
			return reply(i.sched.TalkStart())
		case "stop":
			return reply(i.sched.TalkStop())
		default:
			return fmt.Sprintf("err: unknown talk argument %q", cmd.Args[0])
		}

	case "move":
		if len(cmd.Args) != 2 {
			return "err: usage: move <channel> <position>"
		}
		channel, err := strconv.ParseUint(cmd.Args[0], 10, 8)
		if err != nil {
			return "err: bad channel: " + err.Error()
		}
		position, err := strconv.ParseUint(cmd.Args[1], 10, 16)
		if err != nil {
			return "err: bad position: " + err.Error()
		}
		// The driver validates against the registry and refuses
		// out-of-range targets.
		return reply(i.servos.SetTarget(uint8(channel), uint16(position)))

	case "eyes":
		if len(cmd.Args) != 2 {
			return "err: usage: eyes <h> <v>"
		}
		h, err := strconv.ParseInt(cmd.Args[0], 10, 16)
		if err != nil {
			return "err: bad h offset: " + err.Error()
		}
		v, err := strconv.ParseInt(cmd.Args[1], 10, 16)
		if err != nil {
			return "err: bad v offset: " + err.Error()
		}
		return reply(i.eyes.SetOffset(int16(h), int16(v)))

	case "home":
		return reply(i.servos.HomeAll())

	case "status":
		h, v := i.eyes.Offset()
		return fmt.Sprintf("mode=%s running=%v talking=%v eyes=%d,%d",
			i.sched.Mode(), i.sched.Running(), i.sched.Talking(), h, v)

	case "help":
		return "commands: start stop mode talk move eyes home status help"

	default:
		return fmt.Sprintf("err: unknown command %q", cmd.Name)
	}
}

// reply maps an action result to the wire reply
func reply(err error) string {
	if err != nil {
		return "err: " + err.Error()
	}
	return "ok"
}
