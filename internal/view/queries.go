package view

import "strings"

const (
	OutOfStock  = "Out of Stock"
	LowStock    = "Low Stock"
	Overstocked = "Overstocked"
)

// QuickQueries lists the predefined server-side filters in display order.
var QuickQueries = []string{OutOfStock, LowStock, Overstocked}

// QuerySlug lowercases and hyphenates a quick query title.
func QuerySlug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func QueryPath(title string) string {
	return "/inventory/" + QuerySlug(title)
}

// QueryLabel is the short button label: the first word of the title.
func QueryLabel(title string) string {
	label, _, _ := strings.Cut(title, " ")
	return label
}

// FindQuery resolves a slug, title or button label to its quick query title.
func FindQuery(name string) (string, bool) {
	for _, title := range QuickQueries {
		if strings.EqualFold(name, title) || strings.EqualFold(name, QuerySlug(title)) || strings.EqualFold(name, QueryLabel(title)) {
			return title, true
		}
	}
	return "", false
}
