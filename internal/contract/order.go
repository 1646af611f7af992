// Package contract holds the request shapes shared between the board core
// and the REST data access layer. Field names and JSON tags follow the
// backend wire format exactly; the three reorder endpoints each use their
// own historical spelling of the order field.
package contract

// StageOrder is one element of the stage-reorder payload
// (PUT /projects/products/{productID}/work-stages/order).
type StageOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ProductOrder is one element of the product-reorder payload
// (PUT /projects/products/reorder).
type ProductOrder struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"orderIndex"`
}

// ProjectOrder is one element of the project-reorder payload
// (PUT /projects/reorder).
type ProjectOrder struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"orderIndex"`
}

// ProjectUpdate is the body of PUT /projects/{projectID}. Zero-value fields
// are omitted so a status-only change does not clobber other attributes.
type ProjectUpdate struct {
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}

// ProductUpdate is the body of PUT /projects/{projectID}/products/{productID}.
// The server checks Version against its own and answers 409 on mismatch;
// the client must resend the last version it observed.
type ProductUpdate struct {
	Name       string `json:"name,omitempty"`
	Status     string `json:"status,omitempty"`
	Version    int    `json:"version"`
	OrderIndex int    `json:"orderIndex"`
}
