package domain

type ProjectStatus string

const (
	ProjectNew        ProjectStatus = "new"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectArchived   ProjectStatus = "archived"
)

// AllProjectStatuses is the closed set used for board filtering,
// in display order.
var AllProjectStatuses = []ProjectStatus{
	ProjectNew,
	ProjectInProgress,
	ProjectOnHold,
	ProjectCompleted,
	ProjectArchived,
}

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"new": true, "in_progress": true, "on_hold": true,
	"completed": true, "archived": true,
}

type ProductStatus string

const (
	ProductPlanned    ProductStatus = "planned"
	ProductInProgress ProductStatus = "in_progress"
	ProductOnHold     ProductStatus = "on_hold"
	ProductDone       ProductStatus = "done"
)

// ValidProductStatuses is the canonical set of accepted product status strings.
var ValidProductStatuses = map[string]bool{
	"planned": true, "in_progress": true, "on_hold": true, "done": true,
}
