// Package selector resolves operator selection expressions such as
// "1,3-5" against an ordered list of candidate resources.
package selector

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rtmpinput/awsd/models"
	"rtmpinput/errors"
)

// ParseIndices expands expr into ascending, de-duplicated 1-based indices
// within [1, count]. Tokens are a single index or an inclusive "start-end"
// range.
func ParseIndices(expr string, count, minCount int) ([]int, error) {
	seen := make(map[int]struct{})

	for _, raw := range strings.Split(expr, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			return nil, selectionError("empty selection token", expr, token, count)
		}

		if start, end, isRange := strings.Cut(token, "-"); isRange {
			lo, errLo := strconv.Atoi(strings.TrimSpace(start))
			hi, errHi := strconv.Atoi(strings.TrimSpace(end))
			if errLo != nil || errHi != nil {
				return nil, selectionError(fmt.Sprintf("invalid range: %s", token), expr, token, count)
			}
			if lo < 1 || lo > hi || hi > count {
				return nil, selectionError(fmt.Sprintf("invalid range: %s", token), expr, token, count)
			}
			for i := lo; i <= hi; i++ {
				seen[i] = struct{}{}
			}
			continue
		}

		value, err := strconv.Atoi(token)
		if err != nil || value < 1 || value > count {
			return nil, selectionError(fmt.Sprintf("invalid selection: %s", token), expr, token, count)
		}
		seen[value] = struct{}{}
	}

	if len(seen) < minCount {
		return nil, errors.New(errors.ErrSelection, fmt.Sprintf("please select at least %d", minCount),
			map[string]interface{}{
				"expression": expr,
				"selected":   len(seen),
				"min_count":  minCount,
			}, nil)
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

// Select parses expr against candidates and returns the chosen IDs in
// ascending index order.
func Select(candidates []models.CandidateResource, minCount int, expr string) ([]string, error) {
	indices, err := ParseIndices(expr, len(candidates), minCount)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(indices))
	for _, i := range indices {
		ids = append(ids, candidates[i-1].ID)
	}
	return ids, nil
}

// Pick maps zero-based indices, as returned by a Prompter, to candidate IDs.
func Pick(candidates []models.CandidateResource, indices []int) ([]string, error) {
	ids := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(candidates) {
			return nil, errors.New(errors.ErrSelection, "selection out of range",
				map[string]interface{}{
					"index": i + 1,
					"count": len(candidates),
				}, nil)
		}
		ids = append(ids, candidates[i].ID)
	}
	return ids, nil
}

// Labels renders the option list shown to an operator.
func Labels(candidates []models.CandidateResource) []string {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label()
	}
	return labels
}

func selectionError(msg, expr, token string, count int) error {
	return errors.New(errors.ErrSelection, msg,
		map[string]interface{}{
			"expression": expr,
			"token":      token,
			"count":      count,
		}, nil)
}
