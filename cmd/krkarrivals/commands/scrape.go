package commands

import (
	"context"
	"fmt"
	"io"
	"krkarrivals/internal/arrivalstore"
	"krkarrivals/internal/components/serviceutil"
	"krkarrivals/internal/components/telemetry"
	"krkarrivals/internal/scrapers/krakowairport"
	"krkarrivals/internal/service"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	msgWritten = "Zapisano %d rekordów do %s"
	msgNoData  = "Nie znaleziono danych do zapisania"
	msgFailed  = "Błąd podczas pobierania danych: %s"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/arrivals.csv>] [--config <path/to/krkarrivals.json5>]",
	Short: "Fetches the arrivals board once and appends it to the CSV file.",
	Args:  cobra.NoArgs,
	Run:   runScrape,
}

func runScrape(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	cfg = cfg.withFlags(*outPath, *debug)

	ctx := cmd.Context()
	var providers telemetry.Telemetry
	if cfg.Telemetry.Enabled() {
		providers, err = telemetry.Setup(ctx, "krkarrivals", cfg.Telemetry)
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
	}

	tel := telemetry.NewMeterAPI("krkarrivals", telemetry.SlogAPI{})
	err = scrape(ctx, cmd.OutOrStdout(), cfg, tel)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	shutdownErr := providers.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		tel.ReportWarning("telemetry.shutdown", shutdownErr)
	}

	if err != nil {
		cancel()
		os.Exit(1)
	}
}

// scrape runs the pipeline once and prints a single line describing the
// outcome to `out`, the error is returned so the caller can pick an exit code.
func scrape(ctx context.Context, out io.Writer, cfg Config, tel telemetry.API) error {
	store := arrivalstore.New(cfg.Output)

	result, err := runPipeline(ctx, cfg, store, tel)
	if err != nil {
		fmt.Fprintf(out, msgFailed+"\n", oneLine(err.Error()))
		return err
	}
	if result.Written == 0 {
		fmt.Fprintln(out, msgNoData)
		return nil
	}
	fmt.Fprintf(out, msgWritten+"\n", result.Written, store.Path())
	return nil
}

func runPipeline(ctx context.Context, cfg Config, store arrivalstore.Store, tel telemetry.API) (service.Result, error) {
	opts := cfg.clientOptions()
	if cfg.DebugHttpDir != "" {
		output, err := telemetry.NewFilesystemOutput(cfg.DebugHttpDir)
		if err != nil {
			tel.ReportWarning("scrape.debug-http-dir", err, cfg.DebugHttpDir)
		} else {
			opts.InstrumentOutput = output
		}
	}

	client, err := krakowairport.NewClient(opts, tel)
	if err != nil {
		return service.Result{}, err
	}
	return service.New(client, store, tel).Run(ctx)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
