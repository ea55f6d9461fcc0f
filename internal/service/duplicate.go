package service

import (
	"strings"

	"example.com/packpal/internal/models"
)

// Duplicate reports whether a candidate item name already appears in the
// given items. The match is a case-insensitive exact comparison on the item
// text; category is deliberately ignored so that "Tent" in "Camping" and
// "tent" in "General" count as the same thing. A duplicate never blocks
// insertion, it only produces an advisory for the caller.
func Duplicate(items []models.ChecklistItem, text string) bool {
	candidate := strings.ToLower(strings.TrimSpace(text))
	for _, item := range items {
		if strings.ToLower(strings.TrimSpace(item.Text)) == candidate {
			return true
		}
	}
	return false
}
