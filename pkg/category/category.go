package category

import "strings"

// Category is one of the seven fixed goal categories.
type Category string

const (
	Career      Category = "Career"
	Finance     Category = "Finance"
	Health      Category = "Health"
	Family      Category = "Family"
	Learning    Category = "Learning"
	SideProject Category = "Side Project"
	Other       Category = "Other"
)

type meta struct {
	Category   Category
	ColorClass string
	Aliases    []string
}

func table() []meta {
	return []meta{
		{Career, "bg-neo-blue", []string{"career", "work", "job"}},
		{Finance, "bg-neo-lime", []string{"finance", "money"}},
		{Health, "bg-neo-red", []string{"health", "fitness"}},
		{Family, "bg-neo-orange", []string{"family"}},
		{Learning, "bg-neo-purple", []string{"learning", "study", "education"}},
		{SideProject, "bg-neo-teal", []string{"side project", "side-project", "sideproject", "project"}},
		{Other, "bg-neo-gray", []string{"other", "misc"}},
	}
}

// All returns the categories in display order.
func All() []Category {
	t := table()
	out := make([]Category, 0, len(t))
	for _, m := range t {
		out = append(out, m.Category)
	}
	return out
}

// Parse maps a free-form string to a Category. Unrecognized input maps to
// Other rather than failing; imports depend on this.
func Parse(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Other
	}
	for _, m := range table() {
		if strings.ToLower(string(m.Category)) == s {
			return m.Category
		}
		for _, a := range m.Aliases {
			if a == s {
				return m.Category
			}
		}
	}
	return Other
}

// ColorClass returns the default color class assigned to goals in this
// category.
func (c Category) ColorClass() string {
	for _, m := range table() {
		if m.Category == c {
			return m.ColorClass
		}
	}
	return Other.ColorClass()
}

func (c Category) String() string {
	return string(c)
}
