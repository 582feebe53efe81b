// cmd/client/cmd/credential/list.go
package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credentials you have shared",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.ListCredentials(cmd.Context())
		if err != nil {
			return fmt.Errorf("list credentials: %w", err)
		}

		switch listFormat {
		case "json":
			return printCredentialsJSON(list)
		default:
			return printCredentialsTable(list)
		}
	},
}

func printCredentialsTable(list client.CredentialList) error {
	if len(list.Credentials) == 0 {
		fmt.Println("No credentials shared yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tType\tName\tState\tViews\tExpires\tCreated\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t---\t\n")

	for _, c := range list.Credentials {
		views := fmt.Sprintf("%d", c.ViewCount)
		if c.MaxViews != nil {
			views = fmt.Sprintf("%d/%d", c.ViewCount, *c.MaxViews)
		}

		expires := "never"
		if c.ExpiresAt != nil {
			expires = c.ExpiresAt.Format("2006-01-02 15:04")
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			c.ID,
			c.Type,
			truncate(c.Name, 30),
			c.State,
			views,
			expires,
			c.CreatedAt.Format("2006-01-02"),
		)
	}

	w.Flush()
	fmt.Printf("\nTotal: %d\n", list.Total)
	return nil
}

func printCredentialsJSON(list client.CredentialList) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(list)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
