package task

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter selects which tasks are displayed by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists the filters in selector order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending}

// ParseFilter parses a filter name. An empty string is FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !slices.Contains(Filters, f) {
		return FilterAll, fmt.Errorf("invalid filter %q: must be one of all, completed, pending", s)
	}
	return f, nil
}

// Match reports whether t passes the filter. Unknown filters pass every task.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Label returns the display name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterPending:
		return "Pending"
	default:
		return "All"
	}
}

// Next returns the following filter in selector order, wrapping around.
func (f Filter) Next() Filter {
	return cycle(Filters, f)
}

// Sort orders the displayed tasks by text.
type Sort string

const (
	SortDefault Sort = "default"
	SortAZ      Sort = "az"
	SortZA      Sort = "za"
)

// Sorts lists the sort orders in selector order.
var Sorts = []Sort{SortDefault, SortAZ, SortZA}

// ParseSort parses a sort name. An empty string is SortDefault.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortDefault, nil
	}
	o := Sort(s)
	if !slices.Contains(Sorts, o) {
		return SortDefault, fmt.Errorf("invalid sort %q: must be one of default, az, za", s)
	}
	return o, nil
}

// Label returns the display name of the sort order.
func (s Sort) Label() string {
	switch s {
	case SortAZ:
		return "Start-End"
	case SortZA:
		return "End-Start"
	default:
		return "Default"
	}
}

// Next returns the following sort order in selector order, wrapping around.
func (s Sort) Next() Sort {
	return cycle(Sorts, s)
}

// Project derives the displayed list from tasks. The input slice is never
// modified. Sorting is stable, so tasks with equal text keep their filtered
// order.
func Project(tasks []Task, f Filter, s Sort) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}

	switch s {
	case SortAZ, SortZA:
		c := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b Task) int {
			if s == SortZA {
				return c.CompareString(b.Text, a.Text)
			}
			return c.CompareString(a.Text, b.Text)
		})
	}

	return out
}

func cycle[T comparable](all []T, cur T) T {
	i := slices.Index(all, cur)
	return all[(i+1)%len(all)]
}
