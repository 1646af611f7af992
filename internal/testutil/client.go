package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// FakeClient is an in-memory api.Client for TUI and command tests. The
// board slice is inherited from FakeBackend; the catalog and the
// specifications live in plain maps.
type FakeClient struct {
	*FakeBackend

	Catalog []*domain.NomenclatureItem
	Specs   map[string][]*domain.SpecificationLine

	// Err, when set, is returned by every non-board call.
	Err error

	CreatedProjects []*domain.Project
	CreatedProducts []*domain.Product
	CreatedStages   []*domain.Stage
	ProjectUpdates  map[string]contract.ProjectUpdate
	ProductUpdates  map[string]contract.ProductUpdate
	DeletedStages   []string
	seq             int
}

func NewFakeClient(backend *FakeBackend) *FakeClient {
	return &FakeClient{
		FakeBackend:    backend,
		Specs:          make(map[string][]*domain.SpecificationLine),
		ProjectUpdates: make(map[string]contract.ProjectUpdate),
		ProductUpdates: make(map[string]contract.ProductUpdate),
	}
}

func (f *FakeClient) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *FakeClient) UpdateProject(ctx context.Context, projectID string, upd contract.ProjectUpdate) error {
	if f.Err != nil {
		return f.Err
	}
	f.ProjectUpdates[projectID] = upd
	return nil
}

func (f *FakeClient) UpdateProduct(ctx context.Context, projectID, productID string, upd contract.ProductUpdate) error {
	if f.Err != nil {
		return f.Err
	}
	f.ProductUpdates[productID] = upd
	return nil
}

func (f *FakeClient) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := *p
	c.ID = f.nextID("proj")
	f.CreatedProjects = append(f.CreatedProjects, &c)
	return &c, nil
}

func (f *FakeClient) CreateProduct(ctx context.Context, projectID string, p *domain.Product) (*domain.Product, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := *p
	c.ID = f.nextID("prod")
	c.ProjectID = projectID
	f.CreatedProducts = append(f.CreatedProducts, &c)
	return &c, nil
}

func (f *FakeClient) CreateStage(ctx context.Context, productID string, s *domain.Stage) (*domain.Stage, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := *s
	c.ID = f.nextID("stage")
	c.ProductID = productID
	f.CreatedStages = append(f.CreatedStages, &c)
	return &c, nil
}

func (f *FakeClient) DeleteStage(ctx context.Context, productID, stageID string) error {
	if f.Err != nil {
		return f.Err
	}
	f.DeletedStages = append(f.DeletedStages, stageID)
	return nil
}

func (f *FakeClient) ListNomenclature(ctx context.Context, search string, page, limit int) ([]*domain.NomenclatureItem, int, error) {
	if f.Err != nil {
		return nil, 0, f.Err
	}

	var matched []*domain.NomenclatureItem
	needle := strings.ToLower(search)
	for _, item := range f.Catalog {
		if needle == "" ||
			strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Designation), needle) ||
			strings.Contains(strings.ToLower(item.Article), needle) {
			matched = append(matched, item)
		}
	}

	total := len(matched)
	start := page * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *FakeClient) CreateNomenclature(ctx context.Context, item *domain.NomenclatureItem) (*domain.NomenclatureItem, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := *item
	c.ID = f.nextID("nom")
	f.Catalog = append(f.Catalog, &c)
	return &c, nil
}

func (f *FakeClient) GetSpecification(ctx context.Context, productID string) ([]*domain.SpecificationLine, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Specs[productID], nil
}

func (f *FakeClient) AddSpecificationLine(ctx context.Context, productID string, line *domain.SpecificationLine) (*domain.SpecificationLine, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := *line
	c.ID = f.nextID("line")
	c.ProductID = productID
	for _, item := range f.Catalog {
		if item.ID == c.NomenclatureID {
			c.Name = item.Name
			c.Designation = item.Designation
			c.Unit = item.Unit
		}
	}
	f.Specs[productID] = append(f.Specs[productID], &c)
	return &c, nil
}

func (f *FakeClient) RemoveSpecificationLine(ctx context.Context, productID, lineID string) error {
	if f.Err != nil {
		return f.Err
	}
	lines := f.Specs[productID]
	for i, line := range lines {
		if line.ID == lineID {
			f.Specs[productID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("specification line not found: %s", lineID)
}
