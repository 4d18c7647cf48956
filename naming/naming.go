// Package naming derives MediaLive input names.
//
// Two strategies exist and callers pick one explicitly: CheckedResolver
// guarantees the result is absent from the existing-name set, while
// SuffixResolver always appends a random suffix without looking at what
// exists.
package naming

import (
	"math/rand/v2"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rtmpinput/errors"
	"rtmpinput/logger"
)

const (
	packageName = "naming"

	// DefaultPrefix is used for generated names when none is configured
	DefaultPrefix = "rtmp-input"
	// DefaultMaxAttempts bounds the suffixed candidates tried on conflict
	DefaultMaxAttempts = 3

	suffixLength   = 6
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// RandomSource draws suffix characters. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Resolver turns a desired name into the one sent to CreateInput.
type Resolver interface {
	Resolve(desired string, existing map[string]struct{}) (string, error)
	// NeedsExisting reports whether Resolve looks at the existing-name set.
	NeedsExisting() bool
}

// CheckedResolver returns desired unchanged when free, otherwise retries
// with fresh random suffixes up to MaxAttempts times.
type CheckedResolver struct {
	Prefix      string
	MaxAttempts int
	Random      RandomSource
}

// NewCheckedResolver returns a collision-checked resolver.
func NewCheckedResolver(prefix string, maxAttempts int) *CheckedResolver {
	return &CheckedResolver{Prefix: prefix, MaxAttempts: maxAttempts}
}

func (r *CheckedResolver) NeedsExisting() bool { return true }

func (r *CheckedResolver) Resolve(desired string, existing map[string]struct{}) (string, error) {
	log := logger.For(packageName, "CheckedResolver.Resolve")

	if desired == "" {
		return Generated(r.Prefix), nil
	}
	if err := ValidateName(desired); err != nil {
		return "", err
	}
	if _, taken := existing[desired]; !taken {
		return desired, nil
	}

	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	seen := make(map[string]struct{}, len(existing)+maxAttempts)
	for name := range existing {
		seen[name] = struct{}{}
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := desired + "-" + Suffix(r.Random)
		if _, taken := seen[candidate]; !taken {
			log.Warn("Input name exists, using suffixed name",
				zap.String("operation", "name_conflict"),
				zap.String("name", desired),
				zap.String("resolved", candidate),
				zap.Int("attempt", attempt),
			)
			return candidate, nil
		}
		seen[candidate] = struct{}{}
	}

	return "", errors.New(errors.ErrNameResolution, "could not generate unique name",
		map[string]interface{}{
			"name":     desired,
			"attempts": maxAttempts,
		}, nil)
}

// SuffixResolver always appends a random suffix to a supplied name.
type SuffixResolver struct {
	Prefix string
	Random RandomSource
}

// NewSuffixResolver returns the best-effort resolver used by the quick variant.
func NewSuffixResolver(prefix string) *SuffixResolver {
	return &SuffixResolver{Prefix: prefix}
}

func (r *SuffixResolver) NeedsExisting() bool { return false }

func (r *SuffixResolver) Resolve(desired string, _ map[string]struct{}) (string, error) {
	if desired == "" {
		return Generated(r.Prefix), nil
	}
	if err := ValidateName(desired); err != nil {
		return "", err
	}
	return desired + "-" + Suffix(r.Random), nil
}

// ValidateName rejects names MediaLive would not accept.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errors.New(errors.ErrInvalidName, "input name must be alphanumeric with hyphens/underscores",
			map[string]interface{}{
				"name": name,
			}, nil)
	}
	return nil
}

// Generated returns "{prefix}-{uuid}".
func Generated(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-" + uuid.NewString()
}

// Suffix draws six uppercase alphanumeric characters from src.
func Suffix(src RandomSource) string {
	if src == nil {
		src = globalSource{}
	}
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[src.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
