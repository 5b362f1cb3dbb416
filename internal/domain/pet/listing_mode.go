package pet

import (
	"fmt"
	"strings"
)

// ListingMode says whether a pet is offered for free or for sale.
type ListingMode string

const (
	ListingModeFree    ListingMode = "free"
	ListingModeSelling ListingMode = "selling"
)

// IsValid returns true if the mode is recognized.
func (m ListingMode) IsValid() bool {
	return m == ListingModeFree || m == ListingModeSelling
}

// ParseListingMode normalizes raw; empty input means free.
func ParseListingMode(raw string) (ListingMode, error) {
	m := ListingMode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return ListingModeFree, nil
	}
	if !m.IsValid() {
		return "", fmt.Errorf("listing mode must be %q or %q", ListingModeFree, ListingModeSelling)
	}
	return m, nil
}
