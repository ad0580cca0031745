package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wippyai/ecs-abi/decl"
	"github.com/wippyai/ecs-abi/layout"
	"github.com/wippyai/ecs-abi/schema"
)

// componentLayout pairs a declared schema with its computed layout.
type componentLayout struct {
	schema *schema.Schema
	layout layout.Layout
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout schema files...",
		Short: "Print component memory layouts",
		Long:  `Layout prints every field offset, size, alignment and padding of the declared components`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := loadLayouts(cmd, args)
			if err != nil {
				return err
			}
			return printLayouts(cmd.OutOrStdout(), comps, useColor(cmd, os.Stdout))
		},
	}
}

func loadLayouts(cmd *cobra.Command, paths []string) ([]componentLayout, error) {
	files, err := decl.LoadFiles(cmd.Context(), paths...)
	if err != nil {
		return nil, err
	}
	schemas, err := decl.Schemas(files...)
	if err != nil {
		return nil, err
	}

	calc := layout.NewCalculator()
	comps := make([]componentLayout, 0, len(schemas))
	for _, s := range schemas {
		l, err := calc.Calculate(s)
		if err != nil {
			return nil, err
		}
		comps = append(comps, componentLayout{schema: s, layout: l})
	}
	return comps, nil
}

func printLayouts(w io.Writer, comps []componentLayout, colored bool) error {
	nameColor := color.New(color.FgCyan, color.Bold)
	padColor := color.New(color.FgYellow)
	if colored {
		nameColor.EnableColor()
		padColor.EnableColor()
	} else {
		nameColor.DisableColor()
		padColor.DisableColor()
	}

	for i, c := range comps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		l := c.layout
		fmt.Fprintf(w, "%s  size %d  align %d\n", nameColor.Sprint(c.schema.Name()), l.Size, l.Align)
		if l.Placeholder {
			fmt.Fprintln(w, padColor.Sprint("  empty: 1 byte placeholder"))
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  OFFSET\tSIZE\tALIGN\tPAD\tFIELD\tTYPE")
		for j, f := range l.Fields {
			fmt.Fprintf(tw, "  %d\t%d\t%d\t%d\t%s\t%s\n",
				f.Offset, f.Size, f.Align, f.Padding, f.Name, c.schema.Field(j).TypeString())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if l.TrailingPadding > 0 {
			fmt.Fprintln(w, padColor.Sprintf("  trailing padding %d", l.TrailingPadding))
		}
	}
	return nil
}
