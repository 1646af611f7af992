package domain

// IntOr dereferences p, falling back when it is nil. Order indexes
// come back from the API as optional fields, so this shows up wherever
// a missing index has a defined meaning.
func IntOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
