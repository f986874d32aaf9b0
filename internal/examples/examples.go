// Package examples serves the static catalog of ready-to-run SQL
// examples. The catalog ships inside the binary and is returned verbatim;
// it never touches the store.
package examples

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/types"
)

//go:embed examples.json
var raw []byte

// Note accompanies every example set.
const Note = "All queries reference the cu_with_ratios view and can be used as-is"

// allowedCategories is kept sorted; it is the authoritative category list,
// independent of what the data file happens to contain.
var allowedCategories = []string{"comparison", "financial_analysis", "ranking", "search", "trends"}

var (
	loadOnce sync.Once
	catalog  []types.ExampleQuery
	loadErr  error
)

func load() ([]types.ExampleQuery, error) {
	loadOnce.Do(func() {
		loadErr = json.Unmarshal(raw, &catalog)
	})
	if loadErr != nil {
		return nil, errors.Wrap(errors.Execution, "example catalog unavailable", loadErr)
	}
	return catalog, nil
}

// Categories returns the allowed category names in sorted order.
func Categories() []string {
	out := make([]string, len(allowedCategories))
	copy(out, allowedCategories)
	return out
}

// Filter returns the example set for one category, or the whole catalog
// when category is empty. Unknown categories are rejected with the list
// of valid ones.
func Filter(category string) (*types.ExampleSet, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return &types.ExampleSet{
			Category:            "all",
			Examples:            all,
			AvailableCategories: Categories(),
			Note:                Note,
		}, nil
	}

	if !isAllowed(normalized) {
		return nil, errors.Newf(errors.Validation, "unknown example category %q", category).
			WithHint("Available categories: " + strings.Join(allowedCategories, ", "))
	}

	filtered := make([]types.ExampleQuery, 0, len(all))
	for _, ex := range all {
		if ex.Category == normalized {
			filtered = append(filtered, ex)
		}
	}
	return &types.ExampleSet{
		Category:            normalized,
		Examples:            filtered,
		AvailableCategories: Categories(),
		Note:                Note,
	}, nil
}

func isAllowed(category string) bool {
	for _, c := range allowedCategories {
		if c == category {
			return true
		}
	}
	return false
}
