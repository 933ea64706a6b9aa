package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"webdoc/lib/osutil"
	"webdoc/lib/session"
)

var (
	pagesMax      *int
	pagesSymbols  *[]string
	pagesSelector *string
)

func init() {
	flags := pagesCmd.Flags()
	pagesMax = flags.Int("max", 0, "Stop after this many pages, 0 walks until the links run out.")
	pagesSymbols = flags.StringSlice("symbol", nil, "Link texts treated as next-page links.")
	pagesSelector = flags.String("selector", "", "Count matches of this CSS selector on each page.")
	rootCmd.AddCommand(pagesCmd)
}

var pagesCmd = &cobra.Command{
	Use:   "pages <url>",
	Short: "Follow next-page links from a starting page and report each page visited.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		defer s.Close()

		t := newTable()
		if *pagesSelector != "" {
			t.AppendHeader(table.Row{"url", "status", "matches"})
		} else {
			t.AppendHeader(table.Row{"url", "status"})
		}

		opts := session.PageOptions{
			Symbols:  *pagesSymbols,
			MaxPages: *pagesMax,
		}
		err := s.WalkPages(cmd.Context(), args[0], opts, func(res *session.Response) error {
			if *pagesSelector == "" {
				t.AppendRow(table.Row{res.URL(), res.StatusCode()})
				return nil
			}
			doc, err := res.Document()
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{res.URL(), res.StatusCode(), len(doc.Find(*pagesSelector))})
			return nil
		})
		if err != nil {
			osutil.Fatal("page walk failed", err)
		}
		t.Render()
	},
}
