// cmd/client/cmd/request/list.go
package request

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your credential requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.ListRequests(cmd.Context())
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}

		if listFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(list)
		}

		if len(list.Requests) == 0 {
			fmt.Println("No requests yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tStatus\tFields\tCreated\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t\n")

		for _, r := range list.Requests {
			names := make([]string, 0, len(r.Fields))
			for _, f := range r.Fields {
				names = append(names, f.Name)
			}

			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n",
				r.ID,
				r.Status,
				strings.Join(names, ", "),
				r.CreatedAt.Format("2006-01-02"),
			)
		}

		w.Flush()
		fmt.Printf("\nTotal: %d\n", list.Total)
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
