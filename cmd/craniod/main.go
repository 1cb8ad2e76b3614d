package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"craniod/command"
	"craniod/eyes"
	"craniod/host/serial"
	"craniod/maestro"
	"craniod/motion"
	"craniod/script"
)

var (
	device    = flag.String("device", "/dev/ttyACM0", "Maestro command port device path")
	baud      = flag.Int("baud", 9600, "Baud rate (ignored for USB CDC)")
	deviceNum = flag.Int("number", 0, "Pololu-protocol device number (0 = compact protocol)")
	useCRC    = flag.Bool("crc", false, "Append CRC-7 to every serial frame")
	verbose   = flag.Bool("verbose", false, "Enable verbose output")
	playFile  = flag.String("play", "", "Play a YAML sequence file and exit")
)

func main() {
	flag.Parse()

	fmt.Println("Craniod - Animatronic Skull Host")
	fmt.Println("================================")

	// Connect to the Maestro
	fmt.Printf("Connecting to Maestro on %s...\n", *device)
	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}

	ctrl := maestro.NewController(port)
	defer ctrl.Close()

	if *deviceNum != 0 {
		ctrl.SetDeviceNumber(uint8(*deviceNum))
	}
	ctrl.EnableCRC(*useCRC)

	// Push motion shaping and move to the neutral pose before anything
	// else can command a movement.
	if err := ctrl.ApplyMotionProfiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to apply motion profiles: %v\n", err)
		os.Exit(1)
	}
	if err := ctrl.HomeAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to home servos: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		if bits, err := ctrl.GetErrors(); err == nil {
			fmt.Printf("Maestro error register: 0x%04X\n", bits)
		}
	}

	fmt.Println("Connected successfully!")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sched := motion.NewScheduler(ctrl, rng)
	if *verbose {
		sched.SetLogWriter(func(s string) { fmt.Println(s) })
	}
	defer sched.Stop()

	eyeState := eyes.NewState()
	interp := command.NewInterpreter(sched, ctrl, eyeState)

	if *playFile != "" {
		if err := playSequence(*playFile, ctrl, eyeState); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive command loop
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "play":
			if len(parts) != 2 {
				fmt.Println("usage: play <file>")
				continue
			}
			if err := playSequence(parts[1], ctrl, eyeState); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			} else {
				fmt.Println("ok")
			}

		default:
			if reply := interp.Execute(line); reply != "" {
				fmt.Println(reply)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  start              - Begin procedural movement (dynamic mode)")
	fmt.Println("  stop               - Stop all movement and home the servos")
	fmt.Println("  mode <m>           - Switch mode: scripted or dynamic")
	fmt.Println("  talk start|stop    - Start/stop jaw chatter")
	fmt.Println("  move <ch> <pos>    - Command a servo position (validated)")
	fmt.Println("  eyes <h> <v>       - Set the eye offset (validated)")
	fmt.Println("  home               - Move every servo to its home position")
	fmt.Println("  status             - Show scheduler and eye state")
	fmt.Println("  play <file>        - Play a YAML sequence file")
	fmt.Println("  quit/exit/q        - Exit the program")
	fmt.Println()
}

func playSequence(path string, servos script.Servos, eyeState script.EyeSink) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}

	seq, err := script.Load(data)
	if err != nil {
		return err
	}

	fmt.Printf("Playing sequence %q (%d steps)...\n", seq.Name, len(seq.Steps))
	return script.NewPlayer(servos, eyeState).Play(seq)
}
