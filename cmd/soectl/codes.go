package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
)

var codesCmd = &cobra.Command{
	Use:   "codes [group]",
	Short: "Print an event code table, or the type to group mapping",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return renderTypes(cmd.OutOrStdout())
		}
		group, err := models.ParseTypeGroup(args[0])
		if err != nil {
			return err
		}
		return renderCodes(cmd.OutOrStdout(), group)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags stored in the historian",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openHistorian()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		tags, err := store.Tags(ctx)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Tag", "Samples", "First", "Last"})
		var data [][]string
		for _, t := range tags {
			data = append(data, []string{
				t.Tag,
				strconv.FormatInt(t.Count, 10),
				t.First.Format(time.DateTime),
				t.Last.Format(time.DateTime),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	},
}

// renderTypes prints every known raw equipment type with its group and table.
func renderTypes(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Type", "Group", "Table", "Codes"})

	reg := soe.GetGlobalRegistry()
	var data [][]string
	for _, raw := range soe.RawTypes() {
		group := soe.ResolveGroup(raw)
		name, size := "-", 0
		if t, ok := reg.Table(group); ok {
			name, size = t.Name(), t.Size()
		}
		data = append(data, []string{raw, group.String(), name, strconv.Itoa(size)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderCodes prints the code table of group with the colour class of each key.
func renderCodes(w io.Writer, group models.TypeGroup) error {
	t, ok := soe.GetGlobalRegistry().Table(group)
	if !ok {
		return fmt.Errorf("no code table for group %s", group)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Key", "Description", "Class"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, e := range t.Entries() {
		class := string(soe.ClassifyEvent(e.Key))
		if class == "" {
			class = "-"
		}
		data = append(data, []string{strconv.Itoa(e.Code), e.Key, e.Description, class})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
