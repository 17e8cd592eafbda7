package commands

import (
	"context"
	"os"
	"strconv"

	"todo_webapp/internal/storage"

	"github.com/spf13/cobra"
)

// app is shared by every subcommand of one invocation.
type app struct {
	storageMode string
	apiURL      string
	dataDir     string
	blobBackend string
	jsonOutput  bool

	facade *storage.Facade
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage a todo list",
		Long: `todo lists, adds, toggles and removes todo items.

By default it talks to a running todo server (remote mode). With
--storage=local the list is kept in a JSON file on this machine instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.storageMode, "storage", envOr("STORAGE_MODE", string(storage.ModeRemote)), "storage backend: remote, local or database")
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api", envOr("TODO_API_URL", "http://localhost:8080"), "todo server URL for remote mode")
	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", envOr("LOCAL_DATA_DIR", defaultDataDir()), "directory for local mode data")
	rootCmd.PersistentFlags().StringVar(&a.blobBackend, "local-backend", envOr("LOCAL_BLOB_BACKEND", storage.BlobFile), "local mode backend: file, redis or memory")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newAddCommand(a))
	rootCmd.AddCommand(newDoneCommand(a, true))
	rootCmd.AddCommand(newDoneCommand(a, false))
	rootCmd.AddCommand(newRenameCommand(a))
	rootCmd.AddCommand(newRemoveCommand(a))
	rootCmd.AddCommand(newModeCommand(a))

	return rootCmd
}

// store opens the selected backend on first use, so commands that never
// touch todos (help, completion) work without any storage configured.
func (a *app) store(ctx context.Context) (*storage.Facade, error) {
	if a.facade != nil {
		return a.facade, nil
	}
	mode, err := storage.ParseMode(a.storageMode)
	if err != nil {
		return nil, err
	}
	facade, err := storage.Open(ctx, storage.Options{
		Mode:          mode,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		BlobBackend:   a.blobBackend,
		DataDir:       a.dataDir,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB(),
		RedisPrefix:   "todo:",
		APIURL:        a.apiURL,
	})
	if err != nil {
		return nil, err
	}
	a.facade = facade
	return facade, nil
}

func (a *app) close() error {
	if a.facade == nil {
		return nil
	}
	err := a.facade.Close()
	a.facade = nil
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// redisDB matches the server's REDIS_DB handling: unset or invalid is 0.
func redisDB() int {
	n, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "todo"
	}
	return "./data"
}
