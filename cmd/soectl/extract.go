package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
)

var extractOpts = soe.DefaultOptions()
var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <equipment>",
	Short: "Print today's Sequence of Events of an equipment",
	Long: `Decode the status word of an equipment and of the equipment it references,
from local midnight until now, newest first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := location()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		store, err := openHistorian()
		if err != nil {
			return err
		}
		defer store.Close()

		x := soe.NewExtractor(store, catalog, soe.WithLocation(loc))
		result, err := x.Extract(cmd.Context(), args[0], extractOpts, func(p models.LoadingProgress) {
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s: %d events (%d total)   ",
				p.CurrentTrendIndex, p.TotalTrends, p.CurrentTrendName, p.CurrentTrendCount, p.TotalLoaded)
		})
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		switch extractOutput {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		case "table":
			if err := renderRecords(cmd.OutOrStdout(), result.Records, loc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d events from %d trends in %dms\n",
				len(result.Records), len(result.Trends), result.ElapsedMs)
			if result.Truncated {
				fmt.Fprintln(cmd.OutOrStdout(), "(truncated)")
			}
			for _, name := range result.StoppedOnBad {
				fmt.Fprintf(cmd.OutOrStdout(), "stopped on bad quality: %s\n", name)
			}
			return nil
		default:
			return fmt.Errorf("unknown output %q", extractOutput)
		}
	},
}

func init() {
	extractCmd.Flags().IntVar(&extractOpts.PerEquipmentCap, "per-equipment", extractOpts.PerEquipmentCap, "Max events per equipment")
	extractCmd.Flags().IntVar(&extractOpts.TotalCap, "total", extractOpts.TotalCap, "Max events overall")
	extractCmd.Flags().StringVar(&extractOpts.Item, "item", extractOpts.Item, "Trend item holding the status word")
	extractCmd.Flags().StringVar(&extractOpts.RefCategory, "refs", extractOpts.RefCategory, "Reference category to follow")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "table", "Output format: table or json")
}

// renderRecords prints records in plant local time.
func renderRecords(w io.Writer, records []models.EventRecord, loc *time.Location) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time", "Equipment", "Group", "Code", "Event", "Value", "Quality"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(records))
	for _, r := range records {
		data = append(data, []string{
			r.TimeUtc.In(loc).Format("15:04:05.000"),
			r.Equipment,
			r.TypeGroup.String(),
			strconv.Itoa(r.BitCode),
			r.Event,
			strconv.FormatFloat(r.TrnValue, 'f', -1, 64),
			string(r.ValueQuality),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
