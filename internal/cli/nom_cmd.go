package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/domain"
	"github.com/avelichko/fabplan/internal/importer"
)

func newNomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nom",
		Short: "Browse and import the parts catalog",
	}

	cmd.AddCommand(
		newNomBrowseCmd(app),
		newNomListCmd(app),
		newNomAddCmd(app),
		newNomImportCmd(app),
	)

	return cmd
}

func newNomBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return fmt.Errorf("the browser needs an interactive terminal")
			}
			p := tea.NewProgram(newNomApp(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

func newNomListCmd(app *App) *cobra.Command {
	var search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, total, err := app.Client.ListNomenclature(
				context.Background(), search, page, nomPageSize)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, item := range items {
				rows = append(rows, []string{item.Name, item.Designation, item.Article, item.Unit})
			}
			fmt.Println(formatter.RenderTable(
				[]string{"Name", "Designation", "Article", "Unit"}, rows))

			pages := (total + nomPageSize - 1) / nomPageSize
			if pages > 1 {
				fmt.Println(formatter.Dim(fmt.Sprintf("page %d/%d, %d items total", page+1, pages, total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name, designation or article")
	cmd.Flags().IntVar(&page, "page", 0, "Page number, starting at 0")

	return cmd
}

func newNomAddCmd(app *App) *cobra.Command {
	var name, designation, article, unit string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a catalog item",
		RunE: func(cmd *cobra.Command, args []string) error {
			item := &domain.NomenclatureItem{
				Name:        name,
				Designation: designation,
				Article:     article,
				Unit:        unit,
			}
			created, err := app.Client.CreateNomenclature(context.Background(), item)
			if err != nil {
				return err
			}
			fmt.Printf("Created catalog item %s\n", created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&designation, "designation", "", "Drawing designation")
	cmd.Flags().StringVar(&article, "article", "", "Article number")
	cmd.Flags().StringVar(&unit, "unit", "", "Measurement unit")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newNomImportCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import catalog items from a spreadsheet export",
		Long: "Parses a CSV export, maps its columns by header, and reports what " +
			"would be created, what already exists, and what is invalid. " +
			"Nothing is sent to the server unless --apply is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			table, err := importer.LoadTable(args[0])
			if err != nil {
				return err
			}

			catalog, err := fetchFullCatalog(ctx, app)
			if err != nil {
				return err
			}

			plan, err := importer.BuildPlan(table, catalog)
			if err != nil {
				return err
			}

			printPlan(plan)

			if !apply {
				if len(plan.New) > 0 {
					fmt.Println(formatter.Dim("Dry run, pass --apply to create the new items."))
				}
				return nil
			}

			created := 0
			for _, item := range plan.New {
				if _, err := app.Client.CreateNomenclature(ctx, item); err != nil {
					return fmt.Errorf("created %d of %d items: %w", created, len(plan.New), err)
				}
				created++
			}
			fmt.Printf("Created %d catalog items.\n", created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Create the new items instead of a dry run")

	return cmd
}

// fetchFullCatalog pages through the whole catalog for import deduplication.
func fetchFullCatalog(ctx context.Context, app *App) ([]*domain.NomenclatureItem, error) {
	const pageSize = 500
	var all []*domain.NomenclatureItem
	for page := 0; ; page++ {
		items, total, err := app.Client.ListNomenclature(ctx, "", page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(all) >= total || len(items) == 0 {
			return all, nil
		}
	}
}

func printPlan(plan *importer.Plan) {
	fmt.Printf("%d new, %d duplicates, %d errors\n\n",
		len(plan.New), len(plan.Duplicates), len(plan.Errors))

	if len(plan.New) > 0 {
		var rows [][]string
		for _, item := range plan.New {
			rows = append(rows, []string{item.Name, item.Designation, item.Unit})
		}
		fmt.Println(formatter.RenderTable([]string{"New item", "Designation", "Unit"}, rows))
	}

	for _, d := range plan.Duplicates {
		fmt.Println(formatter.Dim(fmt.Sprintf(
			"row %d: %q matches existing %q by %s", d.Row, d.Item.Name, d.Existing.Name, d.Tier)))
	}
	for _, e := range plan.Errors {
		fmt.Println(formatter.StyleYellow.Render(e.Error()))
	}
	if len(plan.Duplicates) > 0 || len(plan.Errors) > 0 {
		fmt.Println()
	}
}
