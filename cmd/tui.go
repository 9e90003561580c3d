package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/logging"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI (default)",
	RunE:  runTUI,
}

// runTUI builds dependencies and launches the terminal UI.
func runTUI(cmd *cobra.Command, args []string) error {
	// The UI owns the terminal, so logs go to a file next to the database
	// unless one was given.
	if flagOrEnv(cmd, "log-file", "LINGUA_LOG_FILE") == "" {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		closer, err := logging.Setup(logging.Options{
			Level: flagOrEnv(cmd, "log-level", "LINGUA_LOG_LEVEL"),
			File:  filepath.Join(filepath.Dir(dbPath), "lingua.log"),
		})
		if err != nil {
			return err
		}
		logCloser = closer
	}

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.Options{
		Orchestrator: d.orch,
		History:      d.store.EventRepo(),
		Model:        d.modelLabel(),
		Configured:   d.configured,
	})
}
