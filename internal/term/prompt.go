package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// ConfirmFunc adapts a function to [Confirmer].
type ConfirmFunc func(question string) bool

// Confirm calls f(question).
func (f ConfirmFunc) Confirm(question string) bool { return f(question) }

// Always is a Confirmer that answers yes without asking (--yes).
var Always Confirmer = ConfirmFunc(func(string) bool { return true })

// Prompt asks on out and reads the answer from in. The default answer is no:
// an empty line, end of input or a read error all decline.
type Prompt struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt returns a Prompt reading answers from in and writing questions
// to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm prints "<question> [y/N]: " and reports whether the answer was
// y or yes (any case). Any other answer declines.
func (p *Prompt) Confirm(question string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
