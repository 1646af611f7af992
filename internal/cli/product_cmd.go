package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products within a project",
	}

	cmd.AddCommand(
		newProductAddCmd(app),
		newProductUpdateCmd(app),
	)

	return cmd
}

func newProductAddCmd(app *App) *cobra.Command {
	var name, status string

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Create a new product in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			snap, err := fetchSnapshot(ctx, app)
			if err != nil {
				return err
			}
			proj, err := resolveProject(snap, args[0])
			if err != nil {
				return err
			}

			p := &domain.Product{
				ProjectID: proj.ID,
				Name:      name,
				Status:    domain.ProductStatus(status),
			}
			created, err := app.Client.CreateProduct(ctx, proj.ID, p)
			if err != nil {
				return err
			}
			fmt.Printf("Created product %s in %s\n", created.Name, proj.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&status, "status", string(domain.ProductPlanned),
		"Status: planned, in_progress, on_hold, done")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProductUpdateCmd(app *App) *cobra.Command {
	var name, status string

	cmd := &cobra.Command{
		Use:   "update <project> <product>",
		Short: "Rename a product or change its status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			snap, err := fetchSnapshot(ctx, app)
			if err != nil {
				return err
			}
			proj, err := resolveProject(snap, args[0])
			if err != nil {
				return err
			}
			prod, err := resolveProduct(proj, args[1])
			if err != nil {
				return err
			}

			if name == "" && status == "" {
				return fmt.Errorf("nothing to update, pass --name or --status")
			}
			if status != "" && !domain.ValidProductStatuses[status] {
				return fmt.Errorf("unknown status %q", status)
			}

			// The server rejects the update with a conflict if someone else
			// changed the product since this fetch; the caller retries.
			upd := contract.ProductUpdate{
				Name:       name,
				Status:     status,
				Version:    prod.Version,
				OrderIndex: domain.IntOr(prod.OrderIndex, 0),
			}
			if err := app.Client.UpdateProduct(ctx, proj.ID, prod.ID, upd); err != nil {
				return err
			}
			fmt.Printf("Updated product %s\n", prod.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New product name")
	cmd.Flags().StringVar(&status, "status", "", "New status")

	return cmd
}
