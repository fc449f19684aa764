package catalog

import "github.com/glabrego/recipe-cli/internal/recipes"

// Selection is the record bound to the detail overlay. Recipe and Visible are
// only ever changed together.
type Selection struct {
	Recipe  *recipes.Recipe
	Visible bool
}

// Select opens the overlay on r. Selecting while already open rebinds to r.
func (s Selection) Select(r recipes.Recipe) Selection {
	rec := r
	return Selection{Recipe: &rec, Visible: true}
}

// Dismiss closes the overlay and drops the record in one step.
func (s Selection) Dismiss() Selection {
	return Selection{}
}

// Open reports whether the overlay should be shown.
func (s Selection) Open() bool {
	return s.Visible && s.Recipe != nil
}
