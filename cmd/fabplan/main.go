package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/avelichko/fabplan/internal/api"
	"github.com/avelichko/fabplan/internal/auth"
	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/cli"
	"github.com/avelichko/fabplan/internal/db"
	"github.com/avelichko/fabplan/internal/logging"
	"github.com/avelichko/fabplan/internal/prefs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := os.Getenv("FABPLAN_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fabplan")
	}

	// The TUI owns the terminal, so logs go to a file instead of stderr.
	logPath := os.Getenv("FABPLAN_LOG")
	if logPath == "" {
		logPath = filepath.Join(dataDir, "fabplan.log")
	}
	log, err := logging.New(logPath, os.Getenv("FABPLAN_DEBUG") != "")
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tokens := &auth.FileTokenSource{Path: filepath.Join(dataDir, "token")}

	// The user id namespaces local preferences; an empty id (not logged
	// in yet) still works, prefs are then shared.
	userID := ""
	if token, err := tokens.Token(); err == nil {
		userID, _ = auth.UserID(token)
	}

	database, err := db.OpenDB(filepath.Join(dataDir, "prefs.db"))
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	defer database.Close()

	client := api.NewClient(api.LoadConfig(), tokens, log)

	app := &cli.App{
		Client: client,
		Board:  board.NewCoordinator(client, log),
		Prefs:  prefs.NewStore(database, userID, log),
		Tokens: tokens,
		UserID: userID,
		Log:    log,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
