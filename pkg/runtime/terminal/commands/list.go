package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	registry *reports.Registry
}

func NewListCmd(registry *reports.Registry) *cobra.Command {
	lc := &ListCmd{registry: registry}
	return &cobra.Command{
		Use:   "list",
		Short: "List available reports",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tFILTERS\tDESCRIPTION")
	for _, d := range lc.registry.List() {
		filters := make([]string, 0, len(d.Filters))
		for _, f := range d.Filters {
			filters = append(filters, string(f.Kind))
		}
		filterList := strings.Join(filters, ",")
		if filterList == "" {
			filterList = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Title, filterList, d.Description)
	}
	return w.Flush()
}
