package api

import (
	"time"

	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// ganttRow is one element of the GET /projects/gantt response: a
// stage-shaped record with project, product and manager fields denormalized
// onto it.
type ganttRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	OrderIndex *int   `json:"order"`

	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	ProductStatus     string `json:"productStatus"`
	ProductOrderIndex *int   `json:"productOrderIndex"`
	ProductVersion    int    `json:"productVersion"`

	ProjectID         string `json:"projectId"`
	ProjectName       string `json:"projectName"`
	ProjectStatus     string `json:"projectStatus"`
	ProjectOrderIndex *int   `json:"projectOrderIndex"`

	ManagerName string `json:"managerName"`
}

// toDomain validates and converts a wire row. Missing or unparseable dates
// are tolerated (placeholder rows carry none) and replaced with the current
// date as a non-displayed sentinel.
func (r ganttRow) toDomain(now time.Time) *domain.Stage {
	return &domain.Stage{
		ID:         r.ID,
		Name:       r.Name,
		StartDate:  parseDateOr(r.StartDate, now),
		EndDate:    parseDateOr(r.EndDate, now),
		OrderIndex: r.OrderIndex,

		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		ProductStatus:     domain.ProductStatus(r.ProductStatus),
		ProductOrderIndex: r.ProductOrderIndex,
		ProductVersion:    r.ProductVersion,

		ProjectID:         r.ProjectID,
		ProjectName:       r.ProjectName,
		ProjectStatus:     domain.ProjectStatus(r.ProjectStatus),
		ProjectOrderIndex: r.ProjectOrderIndex,

		ManagerName: r.ManagerName,
	}
}

func parseDateOr(s string, fallback time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// Reorder request bodies, shaped per endpoint.
type stageOrderBody struct {
	Stages []contract.StageOrder `json:"stages"`
}

type productOrderBody struct {
	ProductOrders []contract.ProductOrder `json:"productOrders"`
}

type projectOrderBody struct {
	ProjectOrders []contract.ProjectOrder `json:"projectOrders"`
}

// projectBody is the create/response shape of /projects.
type projectBody struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"`
	OrderIndex *int   `json:"orderIndex,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	TargetDate string `json:"targetDate,omitempty"`
	Manager    string `json:"managerName,omitempty"`
}

// productBody is the create/response shape of /projects/{id}/products.
type productBody struct {
	ID         string `json:"id,omitempty"`
	ProjectID  string `json:"projectId,omitempty"`
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"`
	OrderIndex *int   `json:"orderIndex,omitempty"`
	Version    int    `json:"version,omitempty"`
}

// stageBody is the create/response shape of work stages.
type stageBody struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Order     *int   `json:"order,omitempty"`
}

// nomenclatureBody is the wire shape of a catalog item.
type nomenclatureBody struct {
	ID          string `json:"id,omitempty"`
	Designation string `json:"designation,omitempty"`
	Name        string `json:"name"`
	Article     string `json:"article,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

func (b nomenclatureBody) toDomain() *domain.NomenclatureItem {
	return &domain.NomenclatureItem{
		ID:          b.ID,
		Designation: b.Designation,
		Name:        b.Name,
		Article:     b.Article,
		Unit:        b.Unit,
	}
}

// nomenclaturePage is the paginated list response of GET /nomenclature.
type nomenclaturePage struct {
	Items []nomenclatureBody `json:"items"`
	Total int                `json:"total"`
}

// specLineBody is the wire shape of one bill-of-materials row.
type specLineBody struct {
	ID             string  `json:"id,omitempty"`
	NomenclatureID string  `json:"nomenclatureId"`
	Designation    string  `json:"designation,omitempty"`
	Name           string  `json:"name,omitempty"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
}

func (b specLineBody) toDomain(productID string) *domain.SpecificationLine {
	return &domain.SpecificationLine{
		ID:             b.ID,
		ProductID:      productID,
		NomenclatureID: b.NomenclatureID,
		Designation:    b.Designation,
		Name:           b.Name,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
	}
}
