// Package report classifies playlist videos and renders them as a table file.
package report

import "strings"

// DefaultGroups is the ordered group list. Order matters: the first group whose
// name occurs in a title wins.
var DefaultGroups = []string{
	"Multimercados",
	"Renda Fixa",
	"Crédito Privado",
	"Ações",
	"CRIs",
	"KNRI11",
	"KFOF11",
	"KEVE11",
}

// DefaultFallback labels titles that match no group.
const DefaultFallback = "Outros"

// Classifier assigns a group label to a title by case-insensitive substring
// match against an ordered list.
type Classifier struct {
	groups   []string
	lowered  []string
	fallback string
}

// NewClassifier creates a classifier. A nil groups slice selects DefaultGroups
// and an empty fallback selects DefaultFallback.
func NewClassifier(groups []string, fallback string) *Classifier {
	if groups == nil {
		groups = DefaultGroups
	}
	if fallback == "" {
		fallback = DefaultFallback
	}

	c := &Classifier{
		groups:   append([]string(nil), groups...),
		lowered:  make([]string, len(groups)),
		fallback: fallback,
	}
	for i, g := range c.groups {
		c.lowered[i] = strings.ToLower(g)
	}
	return c
}

// Classify returns the first group contained in title, or the fallback label.
// It is first match, not best match: "Ações e Renda Fixa" is "Renda Fixa".
func (c *Classifier) Classify(title string) string {
	lower := strings.ToLower(title)
	for i, g := range c.lowered {
		if strings.Contains(lower, g) {
			return c.groups[i]
		}
	}
	return c.fallback
}

// Groups returns a copy of the group list in match order.
func (c *Classifier) Groups() []string {
	return append([]string(nil), c.groups...)
}

// Fallback returns the label used when no group matches.
func (c *Classifier) Fallback() string {
	return c.fallback
}
