package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"webdoc/lib/osutil"
)

var (
	linksAbsolute *bool
	linksMatch    *string
)

func init() {
	flags := linksCmd.Flags()
	linksAbsolute = flags.Bool("absolute", false, "Resolve every link against the page's base URL.")
	linksMatch = flags.String("match", "", "Print only the anchor whose text is closest to this query.")
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "List the links on a page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		defer s.Close()

		res, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			osutil.Fatal("failed to fetch page", err)
		}
		doc, err := res.Document()
		if err != nil {
			osutil.Fatal("failed to parse page", err)
		}

		if *linksMatch != "" {
			anchor, similarity := doc.ClosestAnchor(*linksMatch)
			t := newTable()
			t.AppendHeader(table.Row{"text", "href", "similarity"})
			t.AppendRow(table.Row{anchor.Name, anchor.Href, fmt.Sprintf("%.3f", similarity)})
			t.Render()
			return
		}

		if *linksAbsolute {
			for _, link := range doc.AbsoluteLinks() {
				fmt.Println(link)
			}
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"text", "href"})
		for _, anchor := range doc.Anchors() {
			t.AppendRow(table.Row{anchor.Name, anchor.Href})
		}
		t.Render()
	},
}
