package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks the operator for a value when no automated resolver produced
// one. Injected so tests can stub it without simulating a terminal.
type Prompter interface {
	Ask(question string, options []string) (string, error)
}

// StdinPrompter reads answers from an interactive terminal.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

// Ask prints the question (with numbered options when present) and returns
// the operator's answer. Picking an option by number returns the option text.
func (p *StdinPrompter) Ask(question string, options []string) (string, error) {
	fmt.Fprintf(p.out, "\n? %s\n", question)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "> ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(line)

	if len(options) > 0 {
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
	}
	return answer, nil
}
