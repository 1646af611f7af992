package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// statusFlag validates a --status value against the closed project status
// set at parse time, so typos fail before any network call.
type statusFlag struct {
	val *string
}

var _ pflag.Value = (*statusFlag)(nil)

func (s *statusFlag) String() string { return *s.val }
func (s *statusFlag) Type() string   { return "status" }

func (s *statusFlag) Set(v string) error {
	if !domain.ValidProjectStatuses[v] {
		return fmt.Errorf("unknown status %q, expected one of %s",
			v, strings.Join(statusNames(), ", "))
	}
	*s.val = v
	return nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their products",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fetchSnapshot(context.Background(), app)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, p := range snap.Projects {
				stageCount := 0
				for _, prod := range p.Products {
					stageCount += len(prod.Stages)
				}
				rows = append(rows, []string{
					p.Name,
					formatter.StatusBadge(p.Status),
					fmt.Sprintf("%d", len(p.Products)),
					fmt.Sprintf("%d", stageCount),
					p.Manager,
				})
			}

			fmt.Println(formatter.RenderTable(
				[]string{"Project", "Status", "Products", "Stages", "Manager"}, rows))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, status, manager string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:    name,
				Status:  domain.ProjectStatus(status),
				Manager: manager,
			}
			created, err := app.Client.CreateProject(context.Background(), p)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s\n", created.Name)
			return nil
		},
	}

	status = string(domain.ProjectNew)
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Var(&statusFlag{&status}, "status",
		"Status: "+strings.Join(statusNames(), ", "))
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, status string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Rename a project or change its status",
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

			if name == "" && status == "" {
				return fmt.Errorf("nothing to update, pass --name or --status")
			}

			upd := contract.ProjectUpdate{Name: name, Status: status}
			if err := app.Client.UpdateProject(ctx, proj.ID, upd); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", proj.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().Var(&statusFlag{&status}, "status", "New status")

	return cmd
}

func statusNames() []string {
	out := make([]string, 0, len(domain.AllProjectStatuses))
	for _, st := range domain.AllProjectStatuses {
		out = append(out, string(st))
	}
	return out
}
