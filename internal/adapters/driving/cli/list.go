package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli/output"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/components/datatable"
)

// listOptions are the table controls shared by every list command.
type listOptions struct {
	filters []string
	search  string
	sort    string
	desc    bool
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&o.filters, "filter", "f", nil, "filter a column, as column=text (repeatable)")
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "filter every searchable column")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort by column")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "sort descending")
}

func (o *listOptions) reset() {
	*o = listOptions{}
}

// applyListOptions configures t the way the console's table controls do.
func applyListOptions[T any](t *datatable.Table[T], o *listOptions) error {
	for _, f := range o.filters {
		id, value, ok := strings.Cut(f, "=")
		if !ok || id == "" {
			return fmt.Errorf("invalid --filter %q (expected column=text)", f)
		}
		if err := t.SetColumnFilter(id, value); err != nil {
			return fmt.Errorf("%w (filterable: %s)", err, strings.Join(t.FilterableColumns(), ", "))
		}
	}
	t.SetGlobalFilter(o.search)
	if o.sort == "" {
		if o.desc {
			return errors.New("--desc requires --sort")
		}
		return nil
	}
	if err := t.SetSort(o.sort, o.desc); err != nil {
		return fmt.Errorf("%w (sortable: %s)", err, strings.Join(t.SortableColumns(), ", "))
	}
	return nil
}

// printList runs data through the column contracts and prints the
// surviving rows. Structured formats print the rows themselves; text and
// table formats print the rendered cells.
func printList[T any](cmd *cobra.Command, o *listOptions, columns []datatable.Column[T], data []T) error {
	t := datatable.New(columns, data)
	if err := applyListOptions(t, o); err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	rows := t.Rows()
	originals := make([]T, 0, len(rows))
	for _, r := range rows {
		originals = append(originals, r.Original())
	}
	headers, cells := datatable.PlainRows(t)
	return p.Print(originals, output.Table{Headers: headers, Rows: cells})
}
