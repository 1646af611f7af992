package board

import (
	"github.com/avelichko/fabplan/internal/domain"
)

// StatusFilter selects which project statuses are shown on the board.
// A nil filter allows everything (the documented default).
type StatusFilter map[domain.ProjectStatus]bool

// DefaultStatusFilter returns the all-true filter over the closed status set.
func DefaultStatusFilter() StatusFilter {
	f := make(StatusFilter, len(domain.AllProjectStatuses))
	for _, st := range domain.AllProjectStatuses {
		f[st] = true
	}
	return f
}

// Allows reports whether projects with the given status pass the filter.
func (f StatusFilter) Allows(st domain.ProjectStatus) bool {
	if f == nil {
		return true
	}
	return f[st]
}

// ProductRow is one product on the board with its ordered stages.
type ProductRow struct {
	ID         string
	ProjectID  string
	Name       string
	Status     domain.ProductStatus
	OrderIndex *int
	Version    int
	Stages     []*domain.Stage
}

// ItemID returns the product's identity within its sibling list.
func (p *ProductRow) ItemID() string { return p.ID }

// WithOrder returns a copy of the row carrying the given order index.
// The stages slice is shared between the copies.
func (p *ProductRow) WithOrder(order int) *ProductRow {
	c := *p
	c.OrderIndex = &order
	return &c
}

// ProjectRow is one project on the board with its ordered products.
type ProjectRow struct {
	ID         string
	Name       string
	Status     domain.ProjectStatus
	OrderIndex *int
	Manager    string
	Products   []*ProductRow
}

// ItemID returns the project's identity within its sibling list.
func (p *ProjectRow) ItemID() string { return p.ID }

// WithOrder returns a copy of the row carrying the given order index.
// The products slice is shared between the copies.
func (p *ProjectRow) WithOrder(order int) *ProjectRow {
	c := *p
	c.OrderIndex = &order
	return &c
}

// Snapshot is the derived three-level grouping of the flat stage response.
// It is owned by in-memory UI state only; the server stays the source of
// truth for every order index, and the snapshot is always reconcilable by
// re-fetching Flat and rebuilding.
type Snapshot struct {
	Flat     []*domain.Stage
	Projects []*ProjectRow
}

// BuildSnapshot groups the flat stage list into the project → product →
// stage tree, ordered by order index at every level. The status filter is
// applied to projects before any grouping and never affects order.
//
// Placeholder records contribute project and product rows (they are how the
// server represents an empty product or project) but are excluded from
// every stage list.
func BuildSnapshot(flat []*domain.Stage, filter StatusFilter) *Snapshot {
	snap := &Snapshot{Flat: flat}

	projects := make(map[string]*ProjectRow)
	products := make(map[string]*ProductRow)

	for _, s := range flat {
		if !filter.Allows(s.ProjectStatus) {
			continue
		}

		proj, ok := projects[s.ProjectID]
		if !ok {
			proj = &ProjectRow{
				ID:         s.ProjectID,
				Name:       s.ProjectName,
				Status:     s.ProjectStatus,
				OrderIndex: s.ProjectOrderIndex,
				Manager:    s.ManagerName,
			}
			projects[s.ProjectID] = proj
			snap.Projects = append(snap.Projects, proj)
		}

		if s.ProductID == "" {
			// Placeholder for a project with no products.
			continue
		}

		prod, ok := products[s.ProductID]
		if !ok {
			prod = &ProductRow{
				ID:         s.ProductID,
				ProjectID:  s.ProjectID,
				Name:       s.ProductName,
				Status:     s.ProductStatus,
				OrderIndex: s.ProductOrderIndex,
				Version:    s.ProductVersion,
			}
			products[s.ProductID] = prod
			proj.Products = append(proj.Products, prod)
		}

		if !s.IsPlaceholder() {
			prod.Stages = append(prod.Stages, s)
		}
	}

	SortBySiblingOrder(snap.Projects, func(p *ProjectRow) *int { return p.OrderIndex })
	for _, proj := range snap.Projects {
		SortBySiblingOrder(proj.Products, func(p *ProductRow) *int { return p.OrderIndex })
		for _, prod := range proj.Products {
			SortBySiblingOrder(prod.Stages, func(s *domain.Stage) *int { return s.OrderIndex })
		}
	}
	return snap
}

// Project returns the project row with the given id, or nil.
func (s *Snapshot) Project(id string) *ProjectRow {
	for _, p := range s.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ProductByStage returns the project and product rows owning the stage with
// the given id, or nils when the stage is not on the board.
func (s *Snapshot) ProductByStage(stageID string) (*ProjectRow, *ProductRow) {
	for _, proj := range s.Projects {
		for _, prod := range proj.Products {
			for _, st := range prod.Stages {
				if st.ID == stageID {
					return proj, prod
				}
			}
		}
	}
	return nil, nil
}

// ProjectByProduct returns the project row owning the product with the
// given id, or nil.
func (s *Snapshot) ProjectByProduct(productID string) *ProjectRow {
	for _, proj := range s.Projects {
		for _, prod := range proj.Products {
			if prod.ID == productID {
				return proj
			}
		}
	}
	return nil
}
