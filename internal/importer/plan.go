package importer

import (
	"fmt"

	"github.com/avelichko/fabplan/internal/domain"
)

// DuplicateTier says which detection tier flagged a row. The two tiers are
// deliberate product policy: exact designation match outranks normalized
// name equality, and nothing fuzzier is attempted.
type DuplicateTier string

const (
	TierDesignation DuplicateTier = "designation"
	TierName        DuplicateTier = "name"
)

// RowError is a validation failure for one data row (1-based, counting
// from the first row after the header).
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Duplicate pairs an incoming row with the existing catalog item it
// collides with.
type Duplicate struct {
	Row      int
	Item     *domain.NomenclatureItem
	Existing *domain.NomenclatureItem
	Tier     DuplicateTier
}

// Plan is the dry-run outcome of an import: what would be created, what
// already exists, and what is rejected. Nothing touches the server until
// the caller submits Plan.New.
type Plan struct {
	Mapping    *ColumnMapping
	New        []*domain.NomenclatureItem
	Duplicates []Duplicate
	Errors     []RowError
}

// BuildPlan maps, validates and deduplicates a parsed table against the
// existing catalog.
func BuildPlan(table *Table, catalog []*domain.NomenclatureItem) (*Plan, error) {
	mapping, err := AutoMapColumns(table.Headers)
	if err != nil {
		return nil, err
	}

	byDesignation := make(map[string]*domain.NomenclatureItem)
	byName := make(map[string]*domain.NomenclatureItem)
	for _, item := range catalog {
		if item.Designation != "" {
			byDesignation[NormalizeText(item.Designation)] = item
		}
		byName[NormalizeText(item.Name)] = item
	}

	plan := &Plan{Mapping: mapping}
	for i, row := range table.Rows {
		rowNum := i + 1

		item := &domain.NomenclatureItem{
			Designation: mapping.cell(row, FieldDesignation),
			Name:        mapping.cell(row, FieldName),
			Article:     mapping.cell(row, FieldArticle),
			Unit:        mapping.cell(row, FieldUnit),
		}
		if err := item.Validate(); err != nil {
			plan.Errors = append(plan.Errors, RowError{Row: rowNum, Err: err})
			continue
		}

		// Tier 1: exact designation. Tier 2: normalized name.
		if item.Designation != "" {
			if existing, ok := byDesignation[NormalizeText(item.Designation)]; ok {
				plan.Duplicates = append(plan.Duplicates, Duplicate{
					Row: rowNum, Item: item, Existing: existing, Tier: TierDesignation,
				})
				continue
			}
		}
		if existing, ok := byName[NormalizeText(item.Name)]; ok {
			plan.Duplicates = append(plan.Duplicates, Duplicate{
				Row: rowNum, Item: item, Existing: existing, Tier: TierName,
			})
			continue
		}

		// Rows within one file can collide too; later rows see earlier ones.
		if item.Designation != "" {
			byDesignation[NormalizeText(item.Designation)] = item
		}
		byName[NormalizeText(item.Name)] = item
		plan.New = append(plan.New, item)
	}
	return plan, nil
}
