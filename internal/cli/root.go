package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avelichko/fabplan/internal/api"
	"github.com/avelichko/fabplan/internal/auth"
	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/prefs"
)

// App holds everything the CLI commands and TUI views operate on: the REST
// client, the board coordinator built on top of it, the local preference
// store, and the token file.
type App struct {
	Client api.Client
	Board  *board.Coordinator
	Prefs  *prefs.Store
	Tokens *auth.FileTokenSource
	UserID string
	Log    *zap.Logger

	// Interactive is true when stdout is a terminal.
	Interactive bool
}

// NewRootCmd creates the top-level "fabplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fabplan",
		Short: "Manufacturing project board and parts catalog client",
	}

	root.AddCommand(
		newBoardCmd(app),
		newProjectCmd(app),
		newProductCmd(app),
		newNomCmd(app),
		newBomCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
	)

	return root
}
