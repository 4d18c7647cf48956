package naming

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtmpinput/errors"
)

var (
	suffixedPattern  = regexp.MustCompile(`^live-[A-Z0-9]{6}$`)
	generatedPattern = regexp.MustCompile(`^rtmp-input-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// fixedSource always returns the same index, producing "AAAAAA".
type fixedSource struct{}

func (fixedSource) IntN(int) int { return 0 }

// sequenceSource hands out one suffix worth of indices per call group.
type sequenceSource struct {
	values []int
	pos    int
}

func (s *sequenceSource) IntN(n int) int {
	v := s.values[s.pos%len(s.values)] % n
	s.pos++
	return v
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func TestCheckedResolver(t *testing.T) {
	tests := []struct {
		name      string
		desired   string
		existing  map[string]struct{}
		random    RandomSource
		expectErr errors.ErrorType
		check     func(t *testing.T, got string)
	}{
		{
			name:     "free name is returned unchanged",
			desired:  "live",
			existing: set("other"),
			check: func(t *testing.T, got string) {
				assert.Equal(t, "live", got)
			},
		},
		{
			name:    "empty name generates prefixed uuid",
			desired: "",
			check: func(t *testing.T, got string) {
				assert.Regexp(t, generatedPattern, got)
			},
		},
		{
			name:     "conflict appends suffix",
			desired:  "live",
			existing: set("live"),
			random:   rand.New(rand.NewPCG(1, 2)),
			check: func(t *testing.T, got string) {
				assert.Regexp(t, suffixedPattern, got)
				assert.NotEqual(t, "live", got)
			},
		},
		{
			name:     "retries past taken suffix",
			desired:  "live",
			existing: set("live", "live-AAAAAA"),
			// first candidate is all zeros, second is all ones
			random: &sequenceSource{values: []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1}},
			check: func(t *testing.T, got string) {
				assert.Equal(t, "live-BBBBBB", got)
			},
		},
		{
			name:      "exhausted attempts",
			desired:   "live",
			existing:  set("live", "live-AAAAAA"),
			random:    fixedSource{},
			expectErr: errors.ErrNameResolution,
		},
		{
			name:      "invalid characters fail before conflict check",
			desired:   "live stream!",
			existing:  set("live stream!"),
			expectErr: errors.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCheckedResolver("rtmp-input", 3)
			r.Random = tt.random

			got, err := r.Resolve(tt.desired, tt.existing)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestCheckedResolver_ResultNeverExisting(t *testing.T) {
	r := NewCheckedResolver("rtmp-input", 3)
	existing := set("live")

	for i := 0; i < 50; i++ {
		got, err := r.Resolve("live", existing)
		require.NoError(t, err)
		assert.Regexp(t, suffixedPattern, got)
		_, taken := existing[got]
		assert.False(t, taken)
	}
}

func TestCheckedResolver_DoesNotMutateExisting(t *testing.T) {
	r := &CheckedResolver{MaxAttempts: 2, Random: fixedSource{}}
	existing := set("live", "live-AAAAAA")

	_, err := r.Resolve("live", existing)
	require.Error(t, err)
	assert.Len(t, existing, 2)
}

func TestSuffixResolver(t *testing.T) {
	r := NewSuffixResolver("rtmp-input")
	assert.False(t, r.NeedsExisting())

	got, err := r.Resolve("live", nil)
	require.NoError(t, err)
	assert.Regexp(t, suffixedPattern, got)

	got, err = r.Resolve("", nil)
	require.NoError(t, err)
	assert.Regexp(t, generatedPattern, got)

	_, err = r.Resolve("no/slashes", nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidName))
}

func TestSuffixResolver_IgnoresExisting(t *testing.T) {
	r := &SuffixResolver{Random: fixedSource{}}

	got, err := r.Resolve("live", set())
	require.NoError(t, err)
	assert.Equal(t, "live-AAAAAA", got)
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"live", "Live_01", "a-b-c", "X"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", "with space", "dot.name", "ümlaut", strings.Repeat("!", 3)} {
		assert.True(t, errors.Is(ValidateName(bad), errors.ErrInvalidName), bad)
	}
}

func TestGeneratedDefaultPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(Generated(""), DefaultPrefix+"-"))
	assert.True(t, strings.HasPrefix(Generated("studio"), "studio-"))
}
