package pet

import "strings"

// TypeSuggestion is an entry of the type picker shown on the feed and upload form.
type TypeSuggestion struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// SuggestedTypes lists the common types. Type stays free text; these are hints.
var SuggestedTypes = []TypeSuggestion{
	{Type: "dog", Label: "Dogs"},
	{Type: "cat", Label: "Cats"},
	{Type: "fish", Label: "Fish"},
	{Type: "rabbit", Label: "Rabbits"},
}

// NormalizeType trims and lowercases a stored pet type.
func NormalizeType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeTypeFilter prepares a feed search term: trimmed, lowercased,
// internal whitespace runs collapsed to one space.
func NormalizeTypeFilter(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
