package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchQuery  queryFlags
	searchOffset int
	searchLimit  int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search instances and print one page of results",
	Long: `Search the inventory the way the list view does and print one page of
formatted results.

Examples:
  inventoryctl search --index title moby dick
  inventoryctl search --filter language=eng,fre --sort -title --limit 50
  inventoryctl search --segment holdings --index callNumber PS3545 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := searchQuery.query(args)
		if err != nil {
			return err
		}

		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		page, err := client.Search(cmd.Context(), q, searchOffset, searchLimit)
		if err != nil {
			return err
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}

		if len(page.Rows) == 0 {
			fmt.Println("No records found.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCONTRIBUTORS\tPUBLISHERS\tDATE\tRELATION")
		for _, r := range page.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Title, r.Contributors, r.Publishers, r.PublicationDate, r.Relation)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d-%d of %d\n", page.Offset+1, page.Offset+len(page.Rows), page.Total)
		return nil
	},
}

var cqlQuery queryFlags

var cqlCmd = &cobra.Command{
	Use:   "cql [term...]",
	Short: "Print the CQL expression a search would send to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := cqlQuery.query(args)
		if err != nil {
			return err
		}

		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		expr, err := client.CQL(cmd.Context(), q)
		if err != nil {
			return err
		}
		fmt.Println(expr)
		return nil
	},
}

func init() {
	searchQuery.register(searchCmd)
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "records to skip")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "page size (default: service default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the page as JSON")
	rootCmd.AddCommand(searchCmd)

	cqlQuery.register(cqlCmd)
	rootCmd.AddCommand(cqlCmd)
}
