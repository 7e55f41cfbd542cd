package vm

import (
	"context"
	goIO "io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Console is the host side of the machine's keyboard and display: stdin in
// raw mode feeding the key buffer, stdout receiving trap output. It is not
// part of the core; the VM only sees the channel and the writer.
type Console struct {
	savedTermios unix.Termios
	raw          bool
	keys         chan byte
	out          goIO.Writer
}

func NewConsole() *Console {
	return &Console{
		// capacity 1: the poller blocks until the machine consumes the key,
		// matching a keyboard with a single data register
		keys: make(chan byte, 1),
		out:  goIO.Writer(os.Stdout),
	}
}

// Keys is the byte source to hand to New.
func (c *Console) Keys() <-chan byte { return c.keys }

// Output is the byte sink to hand to New.
func (c *Console) Output() goIO.Writer { return c.out }

// EnableRawMode turns off line buffering and echo on stdin so keystrokes
// reach the machine as they are typed. It is a no-op when stdin is not a
// terminal, so piped input works unchanged.
func (c *Console) EnableRawMode() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	if err := termios.Tcgetattr(os.Stdin.Fd(), &c.savedTermios); err != nil {
		return err
	}
	newTermios := c.savedTermios
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &newTermios); err != nil {
		return err
	}
	c.raw = true
	return nil
}

// Restore puts the terminal back the way EnableRawMode found it. Safe to
// call more than once and on consoles that never entered raw mode.
func (c *Console) Restore() {
	if !c.raw {
		return
	}
	termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &c.savedTermios)
	c.raw = false
}

// Poll copies stdin into the key buffer until ctx is canceled. Run it in
// its own goroutine: the read blocks until a key arrives, and the send
// blocks until the machine drains the buffer.
func (c *Console) Poll(ctx context.Context) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case c.keys <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}
