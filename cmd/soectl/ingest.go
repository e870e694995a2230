package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/techequipments/engine/internal/historian"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.csv>...",
	Short: "Append CSV samples to the historian",
	Long: `Append "timestamp,tag,value[,quality]" lines to the historian.

Use "-" to read from standard input. Rejected lines are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistorian()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			stats, err := ingestFile(store, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples from %d lines (%d rejected)\n",
				path, stats.Samples, stats.Lines, len(stats.Errors))
			for _, e := range stats.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  line %d: %s\n", e.Line, e.Reason)
			}
			if err := renderIngestStats(cmd.OutOrStdout(), stats); err != nil {
				return err
			}
		}
		return store.Flush()
	},
}

func ingestFile(store *historian.DuckStore, path string) (*historian.IngestStats, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	stats, err := historian.IngestCSV(r, store, func(lines int, _ int64) {
		fmt.Fprintf(os.Stderr, "\r%s: %d lines", path, lines)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}
	return stats, nil
}

// renderIngestStats prints one row per tag.
func renderIngestStats(w io.Writer, stats *historian.IngestStats) error {
	tags := make([]string, 0, len(stats.Tags))
	for tag := range stats.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tag", "Samples"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, tag := range tags {
		data = append(data, []string{tag, strconv.Itoa(stats.Tags[tag])})
	}
	if len(tags) > 0 {
		data = append(data, []string{
			fmt.Sprintf("%s .. %s", stats.Start.Format(time.DateTime), stats.End.Format(time.DateTime)),
			strconv.Itoa(stats.Samples),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
