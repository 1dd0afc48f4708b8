package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	outPath    *string
	debug      *bool
)

var rootCmd = &cobra.Command{
	Use:   "krkarrivals",
	Short: "krkarrivals appends the arrivals board of Kraków Airport to a CSV file.",
	Long: `krkarrivals fetches the arrivals board of Kraków Airport once, parses the
first table on the page and appends every flight to a CSV file.

Running it without a subcommand is the same as running "krkarrivals scrape".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initSlog(*debug)
	},
	Run:  runScrape,
	Args: cobra.NoArgs,
}

func init() {
	configPath = rootCmd.PersistentFlags().String(
		"config", "",
		fmt.Sprintf("The json5 config file to use, defaults to searching for %s upwards from the cwd.", defaultConfigName),
	)
	outPath = rootCmd.PersistentFlags().String("out", "", "The CSV file to append arrivals to. (default \"arrivals.csv\")")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Log debug information and dump every HTTP exchange to disk.")
}

func initSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
