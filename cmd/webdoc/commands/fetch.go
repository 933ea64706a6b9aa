package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"webdoc/lib/document"
	"webdoc/lib/osutil"
	"webdoc/lib/render"
)

var (
	fetchSelector   *string
	fetchXPath      *string
	fetchAttr       *string
	fetchText       *bool
	fetchClean      *bool
	fetchContaining *[]string
	fetchRender     *bool
	fetchScript     *string
)

func init() {
	flags := fetchCmd.Flags()
	fetchSelector = flags.String("selector", "", "Print the elements matching this CSS selector.")
	fetchXPath = flags.String("xpath", "", "Print the nodes matching this XPath expression.")
	fetchAttr = flags.String("attr", "", "Print this attribute of each matched element.")
	fetchText = flags.Bool("text", false, "Print the text of each match instead of its markup.")
	fetchClean = flags.Bool("clean", false, "Strip script and style tags from matched markup.")
	fetchContaining = flags.StringSlice("containing", nil, "Only keep matches whose text contains one of these strings.")
	fetchRender = flags.Bool("render", false, "Run the page in a headless browser before querying.")
	fetchScript = flags.String("script", "", "JavaScript to evaluate while rendering, implies --render.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a page and print it, or the parts a query matches.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		defer s.Close()

		res, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			osutil.Fatal("failed to fetch page", err)
		}

		if *fetchRender || *fetchScript != "" {
			result, err := res.Render(cmd.Context(), render.Request{
				Script: *fetchScript,
			})
			if err != nil {
				osutil.Fatal("failed to render page", err)
			}
			if *fetchScript != "" {
				fmt.Println(result.ScriptResult.String())
			}
		}

		doc, err := res.Document()
		if err != nil {
			osutil.Fatal("failed to parse page", err)
		}

		switch {
		case *fetchXPath != "":
			elements, err := doc.XPath(*fetchXPath)
			if err != nil {
				osutil.Fatal("bad xpath expression", err)
			}
			for _, el := range elements {
				printElement(el)
			}
		case *fetchSelector != "":
			opts := document.FindOptions{
				Containing: *fetchContaining,
				Clean:      *fetchClean,
			}
			for _, el := range doc.Find(*fetchSelector, opts) {
				printElement(el)
			}
		case *fetchText:
			fmt.Println(doc.Text())
		default:
			fmt.Println(doc.HTML())
		}
	},
}

func printElement(el *document.Element) {
	switch {
	case *fetchAttr != "":
		if value, ok := el.Attrs()[*fetchAttr]; ok {
			fmt.Println(value)
		}
	case *fetchText:
		fmt.Println(el.Text())
	default:
		fmt.Println(el.HTML())
	}
}
