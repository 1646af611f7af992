package domain

import (
	"fmt"
	"time"
)

// NomenclatureItem is one entry in the parts catalog.
type NomenclatureItem struct {
	ID          string
	Designation string // drawing designation, e.g. "АБВГ.123456.001"
	Name        string
	Article     string
	Unit        string // measurement unit, e.g. "pcs", "kg"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required before a catalog item is created.
func (n *NomenclatureItem) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("nomenclature name is required")
	}
	return nil
}

// SpecificationLine is one bill-of-materials row of a product: a catalog
// item with a quantity.
type SpecificationLine struct {
	ID             string
	ProductID      string
	NomenclatureID string
	Designation    string
	Name           string
	Quantity       float64
	Unit           string
}

// Validate checks the fields required before a line is added to a product
// specification.
func (l *SpecificationLine) Validate() error {
	if l.NomenclatureID == "" {
		return fmt.Errorf("specification line must reference a catalog item")
	}
	if l.Quantity <= 0 {
		return fmt.Errorf("specification line quantity must be positive")
	}
	return nil
}
