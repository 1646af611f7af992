package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/fabplan/internal/domain"
)

// Stage options
type StageOption func(*domain.Stage)

func WithOrder(i int) StageOption {
	return func(s *domain.Stage) {
		s.OrderIndex = &i
	}
}

func WithStageID(id string) StageOption {
	return func(s *domain.Stage) {
		s.ID = id
	}
}

func WithProjectStatus(st domain.ProjectStatus) StageOption {
	return func(s *domain.Stage) {
		s.ProjectStatus = st
	}
}

func WithProjectOrder(i int) StageOption {
	return func(s *domain.Stage) {
		s.ProjectOrderIndex = &i
	}
}

func WithProductOrder(i int) StageOption {
	return func(s *domain.Stage) {
		s.ProductOrderIndex = &i
	}
}

func AsPlaceholder() StageOption {
	return func(s *domain.Stage) {
		s.ID = domain.PlaceholderPrefix + uuid.New().String()
		s.Name = ""
	}
}

// NewTestStage builds a stage record for the given project and product with
// sensible defaults: a fresh uuid, a one-week window, and no order index.
func NewTestStage(projectID, productID, name string, opts ...StageOption) *domain.Stage {
	now := time.Now().UTC()
	s := &domain.Stage{
		ID:            uuid.New().String(),
		Name:          name,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, 7),
		ProductID:     productID,
		ProductName:   "Product " + productID,
		ProductStatus: domain.ProductInProgress,
		ProjectID:     projectID,
		ProjectName:   "Project " + projectID,
		ProjectStatus: domain.ProjectInProgress,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BoardFixture builds the flat response for one product with the given
// stage ids, ordered 0..n-1 in the given sequence.
func BoardFixture(projectID, productID string, stageIDs ...string) []*domain.Stage {
	var flat []*domain.Stage
	for i, id := range stageIDs {
		flat = append(flat, NewTestStage(projectID, productID, "Stage "+id,
			WithStageID(id), WithOrder(i), WithProjectOrder(0), WithProductOrder(0)))
	}
	return flat
}
