package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"webdoc/lib/document"
	"webdoc/lib/osutil"
)

var searchAll *bool

func init() {
	searchAll = searchCmd.Flags().Bool("all", false, "Print every match instead of the first.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <url> <template>",
	Short: "Extract values from a page with a template like 'Python is a {} language'.",
	Args:  cobra.ExactArgs(2),
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

		var results []document.Result
		if *searchAll {
			results, err = doc.SearchAll(args[1])
		} else {
			var result *document.Result
			result, err = doc.Search(args[1])
			if result != nil {
				results = append(results, *result)
			}
		}
		if err != nil {
			osutil.Fatal("bad search template", err)
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"match", "field", "value"})
		for i, result := range results {
			for j, value := range result.Fixed {
				t.AppendRow(table.Row{i, j, value})
			}
			for name, value := range result.Named {
				t.AppendRow(table.Row{i, name, value})
			}
		}
		t.Render()
	},
}
