package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive project board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return fmt.Errorf("the board needs an interactive terminal")
			}
			p := tea.NewProgram(newBoardApp(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
