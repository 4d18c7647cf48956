package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"rtmpinput/selector"
)

// Line prompts over plain line-oriented I/O, for pipes and dumb terminals.
// Invalid selections are reported and asked again.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a Line prompter
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) SelectOne(ctx context.Context, title string, options []string) (int, error) {
	for {
		l.list(title, options)
		answer, err := l.read(ctx, "Enter number: ")
		if err != nil {
			return 0, closedInput(title, err)
		}
		indices, err := selector.ParseIndices(answer, len(options), 1)
		if err == nil && len(indices) == 1 {
			return indices[0] - 1, nil
		}
		fmt.Fprintf(l.out, "Invalid selection %q, choose one number between 1 and %d\n", answer, len(options))
	}
}

func (l *Line) SelectMany(ctx context.Context, title string, options []string, minCount int) ([]int, error) {
	for {
		l.list(title, options)
		answer, err := l.read(ctx, "Enter selection: ")
		if err != nil {
			return nil, closedInput(title, err)
		}
		indices, err := selector.ParseIndices(answer, len(options), minCount)
		if err == nil {
			return toZeroBased(indices), nil
		}
		fmt.Fprintf(l.out, "%v\n", err)
	}
}

func (l *Line) ReadLine(ctx context.Context, label string) (string, error) {
	answer, err := l.read(ctx, label+": ")
	if err != nil {
		return "", closedInput(label, err)
	}
	return answer, nil
}

func (l *Line) list(title string, options []string) {
	fmt.Fprintln(l.out, title)
	for i, label := range options {
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, label)
	}
}

// read returns one trimmed line. A final line without a newline still counts.
func (l *Line) read(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.out, prompt)

	line, err := l.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
