package commands

import (
	"errors"
	"fmt"
	"io"
	"krkarrivals/internal/arrivalstore"
	"krkarrivals/internal/components/serviceutil"
	"krkarrivals/internal/scrapers/krakowairport"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--out <path/to/arrivals.csv>]",
	Short: "Prints the arrivals collected so far as a table.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		cfg = cfg.withFlags(*outPath, false)

		arrivals, err := arrivalstore.New(cfg.Output).ReadAll()
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), msgNoData)
			return
		}
		if err != nil {
			serviceutil.Fatal("failed to read arrivals", err)
		}

		renderArrivals(cmd.OutOrStdout(), arrivals)
	},
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderArrivals(out io.Writer, arrivals []krakowairport.Arrival) {
	t := newTable(out)

	header := table.Row{}
	for _, column := range arrivalstore.Header {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for _, a := range arrivals {
		t.AppendRow(table.Row{a.Time, a.Destination, a.Flight, a.Status})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d", len(arrivals))})
	t.Render()
}
