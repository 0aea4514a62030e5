// Package cli implements flavorctl, the maintenance tool that works on the
// backing file directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OFFIS-RIT/flavor/backend/internal/config"
	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger/console"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"
	storecsv "github.com/OFFIS-RIT/flavor/backend/pkg/store/csv"

	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagLang    string
	flagDryRun  bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flavorctl",
	Short: "Maintain the flavor database file",
	Long: `flavorctl imports, exports and inspects the ingredient, compound and
descriptor triples of a flavor database file without running the server.

Every mutating command rewrites the whole file. Use --dry-run to see the
outcome without touching the file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug:  flagVerbose,
			Output: cmd.ErrOrStderr(),
		}))

		cfg := config.Load()
		if flagDB == "" {
			flagDB = cfg.DBFile
		}
		if flagLang == "" {
			flagLang = cfg.HeaderLang
		}
		if flagPolicy == "" {
			flagPolicy = cfg.TierPolicy
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to the flavor database file (default $FLAVOR_DB_FILE or flavor_database.csv)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Header language of written files: zh or en (default $FLAVOR_HEADER_LANG or zh)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Do not write the database file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads the database file. With --dry-run the file is read but all
// writes go to memory.
func openStore(ctx context.Context) (*store.Store, error) {
	file := storecsv.NewFileStorage(storecsv.NewFileStorageParams{
		Path:   flagDB,
		Header: flavor.Header(flagLang),
	})

	var backend store.RecordStorage = file
	if flagDryRun {
		records, err := file.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", flagDB, err)
		}
		backend = store.NewMemoryStorage(records...)
	}

	s := store.New(backend)
	if err := s.Load(ctx); err != nil {
		var loadErr *store.LoadError
		if !errors.As(err, &loadErr) {
			return nil, err
		}
		logger.Warn("Database could not be read, starting empty", "file", flagDB, "err", err)
	}
	return s, nil
}

func fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
