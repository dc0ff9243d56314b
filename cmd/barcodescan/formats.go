package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	rxinggo "github.com/ericlevine/rxinggo"
)

func (a *app) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List barcode formats and their capabilities",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tDECODE\tENCODE\tENCODE HINTS")
			for _, info := range rxinggo.DefaultRegistry().Formats() {
				hints := make([]string, len(info.EncodeHints))
				for i, h := range info.EncodeHints {
					hints[i] = h.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Format, yesNo(info.Decodable), yesNo(info.Encodable),
					strings.Join(hints, ","))
			}
			return w.Flush()
		}),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
