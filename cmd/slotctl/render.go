package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/autoservice-booking-api/pkg/export"
)

const formatTable = "table"

func render(cmd *cobra.Command, output outputFlags, data export.Dataset) error {
	w, closeOut, err := output.writer(cmd)
	if err != nil {
		return err
	}
	if err := encode(w, output.format, data); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func encode(w io.Writer, format string, data export.Dataset) error {
	if strings.EqualFold(format, formatTable) {
		return writeTable(w, data)
	}
	parsed, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	body, err := export.RendererFor(parsed).Render(data)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func writeTable(w io.Writer, data export.Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if data.Title != "" {
		fmt.Fprintln(tw, data.Title)
	}
	titles := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		titles[i] = col.Title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, row := range data.Rows {
		cells := make([]string, len(data.Columns))
		for i, col := range data.Columns {
			cells[i] = row[col.Key]
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if len(data.Rows) == 0 {
		fmt.Fprintln(tw, "no slots available")
	}
	return tw.Flush()
}
