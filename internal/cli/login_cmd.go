package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelichko/fabplan/internal/auth"
)

func newLoginCmd(app *App) *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API token used for all requests",
		Long: "Saves a bearer token to the token file. The token is read on " +
			"every request, so a new login takes effect without restarting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(tokenFlag)
			if token == "" {
				// Read from stdin so the token stays out of shell history.
				fmt.Fprint(os.Stderr, "Token: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && err != io.EOF {
					return err
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}

			if err := app.Tokens.Save(token); err != nil {
				return err
			}

			if userID, err := auth.UserID(token); err == nil {
				fmt.Printf("Logged in as %s\n", userID)
			} else {
				fmt.Println("Token saved.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFlag, "token", "", "Bearer token (omit to read from stdin)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tokens.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
