package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelichko/fabplan/internal/board"
)

// fetchSnapshot loads the board and returns the unfiltered snapshot.
// Non-interactive commands use it to resolve names and print listings.
func fetchSnapshot(ctx context.Context, app *App) (*board.Snapshot, error) {
	flat, err := app.Client.FetchBoard(ctx)
	if err != nil {
		return nil, err
	}
	return board.BuildSnapshot(flat, nil), nil
}

// resolveProject maps user input to a project row: exact id first, then
// exact name (case-insensitive), then unique name prefix.
func resolveProject(snap *board.Snapshot, input string) (*board.ProjectRow, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}

	for _, p := range snap.Projects {
		if p.ID == input {
			return p, nil
		}
	}
	for _, p := range snap.Projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []*board.ProjectRow
	for _, p := range snap.Projects {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(input)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProduct maps user input to a product row within a project,
// with the same id / name / prefix fallbacks as resolveProject.
func resolveProduct(proj *board.ProjectRow, input string) (*board.ProductRow, error) {
	if input == "" {
		return nil, fmt.Errorf("product is required")
	}

	for _, p := range proj.Products {
		if p.ID == input {
			return p, nil
		}
	}
	for _, p := range proj.Products {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []*board.ProductRow
	for _, p := range proj.Products {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(input)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("product not found in %q: %q", proj.Name, input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("product %q is ambiguous (%d matches)", input, len(matches))
	}
}
