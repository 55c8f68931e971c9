package monitor

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Command is an interactive instruction for the monitor loop.
type Command int

const (
	CommandWin Command = iota
	CommandLoss
	CommandVerdict
	CommandRefresh
	CommandQuit
)

// ReadCommands turns lines from r into commands. The channel closes when r
// is exhausted or a quit command was read. Unrecognized lines are ignored.
func ReadCommands(ctx context.Context, r io.Reader) <-chan Command {
	ch := make(chan Command)

	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cmd, ok := parseCommand(scanner.Text())
			if !ok {
				continue
			}
			select {
			case ch <- cmd:
			case <-ctx.Done():
				return
			}
			if cmd == CommandQuit {
				return
			}
		}
	}()

	return ch
}

func parseCommand(line string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "w", "win":
		return CommandWin, true
	case "l", "loss":
		return CommandLoss, true
	case "v", "verdict", "analyze":
		return CommandVerdict, true
	case "r", "refresh":
		return CommandRefresh, true
	case "q", "quit", "exit":
		return CommandQuit, true
	}
	return 0, false
}
