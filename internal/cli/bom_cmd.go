package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/domain"
)

func newBomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bom",
		Short: "Work with product specifications",
	}

	cmd.AddCommand(
		newBomShowCmd(app),
		newBomAddCmd(app),
		newBomRemoveCmd(app),
	)

	return cmd
}

// resolveBomProduct resolves the project and product arguments shared by
// all bom subcommands.
func resolveBomProduct(ctx context.Context, app *App, projectArg, productArg string) (*board.ProductRow, error) {
	snap, err := fetchSnapshot(ctx, app)
	if err != nil {
		return nil, err
	}
	proj, err := resolveProject(snap, projectArg)
	if err != nil {
		return nil, err
	}
	return resolveProduct(proj, productArg)
}

func newBomShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project> <product>",
		Short: "Print the specification of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prod, err := resolveBomProduct(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			lines, err := app.Client.GetSpecification(ctx, prod.ID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println(formatter.Dim("The specification is empty."))
				return nil
			}

			var rows [][]string
			for _, line := range lines {
				qty := strconv.FormatFloat(line.Quantity, 'f', -1, 64)
				rows = append(rows, []string{
					formatter.Dim(line.ID), line.Name, line.Designation, qty, line.Unit})
			}
			fmt.Println(formatter.RenderTable(
				[]string{"Line", "Item", "Designation", "Qty", "Unit"}, rows))
			return nil
		},
	}
}

func newBomAddCmd(app *App) *cobra.Command {
	var item string
	var quantity float64

	cmd := &cobra.Command{
		Use:   "add <project> <product>",
		Short: "Add a catalog item to a product specification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prod, err := resolveBomProduct(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			nomID, err := resolveNomItem(ctx, app, item)
			if err != nil {
				return err
			}

			line := &domain.SpecificationLine{
				ProductID:      prod.ID,
				NomenclatureID: nomID,
				Quantity:       quantity,
			}
			created, err := app.Client.AddSpecificationLine(ctx, prod.ID, line)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s x%s to %s\n",
				created.Name, strconv.FormatFloat(created.Quantity, 'f', -1, 64), prod.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Catalog item: id, designation or name")
	cmd.Flags().Float64Var(&quantity, "qty", 1, "Quantity")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newBomRemoveCmd(app *App) *cobra.Command {
	var lineID string

	cmd := &cobra.Command{
		Use:   "remove <project> <product>",
		Short: "Remove a line from a product specification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prod, err := resolveBomProduct(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			if err := app.Client.RemoveSpecificationLine(ctx, prod.ID, lineID); err != nil {
				return err
			}
			fmt.Println("Removed specification line.")
			return nil
		},
	}

	cmd.Flags().StringVar(&lineID, "line", "", "Specification line id (see bom show)")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

// resolveNomItem maps user input to a catalog item id via the search
// endpoint: an exact id wins, then an exact designation, then a unique
// search hit.
func resolveNomItem(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("catalog item is required")
	}

	items, _, err := app.Client.ListNomenclature(ctx, input, 0, 50)
	if err != nil {
		return "", err
	}
	for _, item := range items {
		if item.ID == input || item.Designation == input {
			return item.ID, nil
		}
	}
	switch len(items) {
	case 0:
		return "", fmt.Errorf("catalog item not found: %q", input)
	case 1:
		return items[0].ID, nil
	default:
		return "", fmt.Errorf("catalog item %q is ambiguous (%d matches)", input, len(items))
	}
}
