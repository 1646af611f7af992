package cli

// SharedState is handed to every view by pointer: terminal geometry
// plus the product the specification view is scoped to.
type SharedState struct {
	App *App

	ActiveProductID   string
	ActiveProductName string
	ActiveProjectID   string

	Width  int
	Height int
}

// SetActiveProduct records which product a specification view opened
// from, so its loads and edits target the right endpoint.
func (s *SharedState) SetActiveProduct(projectID, productID, productName string) {
	s.ActiveProjectID = projectID
	s.ActiveProductID = productID
	s.ActiveProductName = productName
}

// ClearProductContext drops the product scope.
func (s *SharedState) ClearProductContext() {
	s.ActiveProjectID = ""
	s.ActiveProductID = ""
	s.ActiveProductName = ""
}

// ContentHeight is the rows left for view content once the two header
// lines and two status-bar lines are taken out.
func (s *SharedState) ContentHeight() int {
	if h := s.Height - 4; h > 1 {
		return h
	}
	return 1
}
