// Package catalog derives the visible recipe list from a fetched catalog and
// the viewer's filter state. Everything here is a pure function of its inputs.
package catalog

import (
	"strings"

	"github.com/glabrego/recipe-cli/internal/recipes"
)

// AllCategory is the sentinel category that applies no tag constraint.
const AllCategory = "All"

type FilterState struct {
	Category string
	Search   string
}

// DefaultFilter returns the filter state of a freshly mounted shop view.
func DefaultFilter() FilterState {
	return FilterState{Category: AllCategory}
}

func (s FilterState) category() string {
	if s.Category == "" {
		return AllCategory
	}
	return s.Category
}

// Categories returns AllCategory followed by every distinct tag in first
// occurrence order.
func Categories(list []recipes.Recipe) []string {
	out := []string{AllCategory}
	seen := map[string]struct{}{AllCategory: {}}
	for _, r := range list {
		for _, tag := range r.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Matches reports whether r passes both the category and the search constraint.
func Matches(r recipes.Recipe, s FilterState) bool {
	if c := s.category(); c != AllCategory && !r.HasTag(c) {
		return false
	}
	if s.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(s.Search)) {
		return false
	}
	return true
}

// Filter returns the subsequence of list matching s, in catalog order. The
// result never aliases list.
func Filter(list []recipes.Recipe, s FilterState) []recipes.Recipe {
	out := make([]recipes.Recipe, 0, len(list))
	for _, r := range list {
		if Matches(r, s) {
			out = append(out, r)
		}
	}
	return out
}

// CycleCategory moves the selected category delta steps through categories,
// wrapping at both ends. A category missing from categories restarts at
// AllCategory.
func (s FilterState) CycleCategory(categories []string, delta int) FilterState {
	if len(categories) == 0 {
		s.Category = AllCategory
		return s
	}
	idx := indexOf(categories, s.category())
	if idx < 0 {
		s.Category = AllCategory
		return s
	}
	n := len(categories)
	idx = ((idx+delta)%n + n) % n
	s.Category = categories[idx]
	return s
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
