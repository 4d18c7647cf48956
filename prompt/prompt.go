// Package prompt implements the operator prompts used to fill gaps in a
// request: huh forms on a terminal, plain line I/O otherwise.
package prompt

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"rtmpinput/builder"
	"rtmpinput/errors"
)

// New returns a Form when in and out are both terminals and a Line prompter
// otherwise.
func New(in *os.File, out *os.File) builder.Prompter {
	if isTerminal(in) && isTerminal(out) {
		return NewForm(in, out)
	}
	return NewLine(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// toZeroBased converts ascending 1-based selector indices.
func toZeroBased(indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = idx - 1
	}
	return out
}

// closedInput turns EOF into a missing answer; other read errors pass through.
func closedInput(label string, err error) error {
	if err != io.EOF {
		return err
	}
	return errors.New(errors.ErrMissingParameter, "input closed before an answer was given",
		map[string]interface{}{
			"prompt": label,
		}, io.ErrUnexpectedEOF)
}
