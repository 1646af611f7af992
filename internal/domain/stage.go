package domain

import (
	"strings"
	"time"
)

// PlaceholderPrefix marks synthetic stage ids created client-side to
// represent an empty product or project row. Placeholder records are never
// ordered, edited, or sent to the server.
const PlaceholderPrefix = "placeholder-"

// Stage is one unit of work within a product, as returned by the board
// fetch. Project and product fields are denormalized onto each record so a
// single flat response carries the whole three-level tree.
type Stage struct {
	ID         string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	OrderIndex *int // nil when the server has never assigned an order

	ProductID         string
	ProductName       string
	ProductStatus     ProductStatus
	ProductOrderIndex *int
	ProductVersion    int

	ProjectID         string
	ProjectName       string
	ProjectStatus     ProjectStatus
	ProjectOrderIndex *int

	ManagerName string
}

// IsPlaceholder reports whether the record is a synthetic row rather than
// real work: either the name is empty or the id carries the placeholder
// prefix.
func (s *Stage) IsPlaceholder() bool {
	return s.Name == "" || strings.HasPrefix(s.ID, PlaceholderPrefix)
}

// IsPersisted reports whether the server has assigned this stage an id.
func (s *Stage) IsPersisted() bool {
	return s.ID != "" && !strings.HasPrefix(s.ID, PlaceholderPrefix)
}

// ItemID returns the stage's identity within its sibling list.
func (s *Stage) ItemID() string { return s.ID }

// WithOrder returns a copy of the stage carrying the given order index.
// The receiver is not mutated.
func (s *Stage) WithOrder(order int) *Stage {
	c := *s
	c.OrderIndex = &order
	return &c
}
