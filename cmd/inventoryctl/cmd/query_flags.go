package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	inventory "github.com/kailas-cloud/inventory/pkg/sdk"
)

// queryFlags are the search state flags shared by search, cql and reports.
type queryFlags struct {
	segment string
	index   string
	filters []string
	sort    string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.segment, "segment", "instances", "record type: instances, holdings or items")
	cmd.Flags().StringVar(&f.index, "index", "", "search index, e.g. title or isbn (default: all fields)")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "filter as name=v1,v2 (repeatable)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort keys, comma separated; prefix '-' for descending")
}

// query builds the SDK query; args are joined into the search term.
func (f *queryFlags) query(args []string) (inventory.Query, error) {
	q := inventory.Query{
		Segment: inventory.Segment(f.segment),
		Index:   f.index,
		Term:    strings.Join(args, " "),
		Sort:    f.sort,
	}
	for _, raw := range f.filters {
		name, values, ok := strings.Cut(raw, "=")
		if !ok || name == "" || values == "" {
			return inventory.Query{}, fmt.Errorf("invalid --filter %q, want name=v1,v2", raw)
		}
		q.Filters = append(q.Filters, inventory.Filter{Name: name, Values: strings.Split(values, ",")})
	}
	return q, nil
}
