package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/store"
)

var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Terminal language-learning assistant",
	Long: `lingua explains an example sentence in five sections (translation,
vocabulary, grammar, pronunciation and culture), asks three quiz
questions and has the model evaluate the answers. Output is in Korean.

Set ANTHROPIC_API_KEY (or another provider's key, see LINGUA_LLM_PROVIDER)
in the environment or in a .env file.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")
	pf.String("catalog", "", "JSON file with extra example sentences (overrides LINGUA_CATALOG env var)")
	pf.String("log-file", "", "Write logs to this file (overrides LINGUA_LOG_FILE env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides LINGUA_LOG_LEVEL env var)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	closer, err := logging.Setup(logging.Options{
		Level: flagOrEnv(cmd, "log-level", "LINGUA_LOG_LEVEL"),
		File:  flagOrEnv(cmd, "log-file", "LINGUA_LOG_FILE"),
	})
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// flagOrEnv returns the flag value when set, else the environment variable.
func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGUA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store named by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
