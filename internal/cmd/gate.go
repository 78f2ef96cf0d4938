package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brokeneck/brokeneck/cli/internal/entity"
)

// TerminalGate asks for confirmation on a line-based terminal. Anything but
// "y" or "yes" declines, including end of input.
type TerminalGate struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewTerminalGate reads answers from in. With assumeYes it approves without asking.
func NewTerminalGate(in io.Reader, out io.Writer, assumeYes bool) *TerminalGate {
	return &TerminalGate{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// Ask implements entity.ConfirmationGate.
func (g *TerminalGate) Ask(ctx context.Context, p entity.Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if g.assumeYes {
		return true, nil
	}

	fmt.Fprintf(g.out, "%s\n%s [y/N] ", p.Title, p.Text)
	line, err := g.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
