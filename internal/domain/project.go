package domain

import (
	"fmt"
	"time"
)

// Project is the top-level board container. Projects are archived rather
// than deleted; the board never removes one.
type Project struct {
	ID         string
	Name       string
	Status     ProjectStatus
	OrderIndex *int
	StartDate  time.Time
	TargetDate *time.Time
	Manager    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields a create/edit dialog must supply before any
// network call is made.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Status != "" && !ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("unknown project status %q", p.Status)
	}
	return nil
}

// Product belongs to exactly one project and owns the ordered stages.
// The server guards product updates with an optimistic-concurrency version;
// the client must resend the last version it saw.
type Product struct {
	ID         string
	ProjectID  string
	Name       string
	Status     ProductStatus
	OrderIndex *int
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields a create/edit dialog must supply before any
// network call is made.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.ProjectID == "" {
		return fmt.Errorf("product must belong to a project")
	}
	if p.Status != "" && !ValidProductStatuses[string(p.Status)] {
		return fmt.Errorf("unknown product status %q", p.Status)
	}
	return nil
}
