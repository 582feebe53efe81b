// cmd/client/cmd/credential/types.go
package credential

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported credential types and their fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		types, err := app.ListTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch credential types: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range types.Types {
			fmt.Fprintf(w, "%s\t\t\t\n", t.Type)
			for _, f := range t.Fields {
				attrs := ""
				if f.Required {
					attrs = "required"
				}
				if f.Sensitive {
					if attrs != "" {
						attrs += ", "
					}
					attrs += "sensitive"
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\t\n", f.Name, f.Label, attrs)
			}
		}
		w.Flush()

		return nil
	},
}
