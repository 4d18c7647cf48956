package prompt

import (
	"context"

	"rtmpinput/errors"
)

// Disabled refuses every prompt, for --non-interactive runs
type Disabled struct{}

func (Disabled) SelectOne(_ context.Context, title string, _ []string) (int, error) {
	return 0, refused(title)
}

func (Disabled) SelectMany(_ context.Context, title string, _ []string, _ int) ([]int, error) {
	return nil, refused(title)
}

func (Disabled) ReadLine(_ context.Context, label string) (string, error) {
	return "", refused(label)
}

func refused(prompt string) error {
	return errors.New(errors.ErrMissingParameter, "value required but prompting is disabled",
		map[string]interface{}{
			"prompt": prompt,
		}, nil)
}
