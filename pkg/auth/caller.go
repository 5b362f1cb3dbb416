package auth

// Caller is the resolved identity performing a request. Values come from the
// identity provider's token and are trusted as-is.
type Caller struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
}

// Anonymous reports whether no identity was resolved.
func (c Caller) Anonymous() bool {
	return c.ID == ""
}
