package prompt

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"rtmpinput/selector"
)

// Form prompts with charmbracelet/huh
type Form struct {
	in  io.Reader
	out io.Writer
}

// NewForm creates a Form reading from in and drawing on out
func NewForm(in io.Reader, out io.Writer) *Form {
	return &Form{in: in, out: out}
}

func (f *Form) run(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithInput(f.in).
		WithOutput(f.out).
		RunWithContext(ctx)
}

func (f *Form) SelectOne(ctx context.Context, title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}

	var idx int
	err := f.run(ctx, huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&idx))
	if err != nil {
		return 0, err
	}
	return idx, nil
}

// SelectMany takes a selection expression ("1,2" or "2-4,6") over a numbered list
func (f *Form) SelectMany(ctx context.Context, title string, options []string, minCount int) ([]int, error) {
	var lines []string
	for i, label := range options {
		lines = append(lines, strconv.Itoa(i+1)+". "+label)
	}

	var expr string
	err := f.run(ctx, huh.NewInput().
		Title(title).
		Description(strings.Join(lines, "\n")).
		Value(&expr).
		Validate(func(s string) error {
			_, err := selector.ParseIndices(s, len(options), minCount)
			return err
		}))
	if err != nil {
		return nil, err
	}

	indices, err := selector.ParseIndices(expr, len(options), minCount)
	if err != nil {
		return nil, err
	}
	return toZeroBased(indices), nil
}

func (f *Form) ReadLine(ctx context.Context, label string) (string, error) {
	var value string
	if err := f.run(ctx, huh.NewInput().Title(label).Value(&value)); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
