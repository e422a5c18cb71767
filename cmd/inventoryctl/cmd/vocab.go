package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage controlled vocabularies such as itemNoteTypes",
}

var vocabListCmd = &cobra.Command{
	Use:   "list <vocabulary>",
	Short: "List the entries of a vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		v, err := client.Vocabularies().List(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "ID")
		for _, c := range v.Columns {
			fmt.Fprintf(w, "\t%s", c)
		}
		fmt.Fprintln(w)
		for _, e := range v.Entries {
			fmt.Fprint(w, e.Fields["id"])
			for _, c := range v.Columns {
				fmt.Fprintf(w, "\t%v", e.Fields[c])
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

var vocabCreateCmd = &cobra.Command{
	Use:   "create <vocabulary> <json>",
	Short: `Create an entry, e.g. create itemNoteTypes '{"name":"Provenance"}'`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fields map[string]any
		if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
			return fmt.Errorf("parse entry: %w", err)
		}

		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		created, err := client.Vocabularies().Create(cmd.Context(), args[0], fields)
		if err != nil {
			return err
		}
		fmt.Println(created["id"])
		return nil
	},
}

var vocabDeleteCmd = &cobra.Command{
	Use:   "delete <vocabulary> <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		return client.Vocabularies().Delete(cmd.Context(), args[0], args[1])
	},
}

func init() {
	vocabCmd.AddCommand(vocabListCmd, vocabCreateCmd, vocabDeleteCmd)
	rootCmd.AddCommand(vocabCmd)
}
