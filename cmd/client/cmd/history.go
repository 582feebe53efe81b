// cmd/client/cmd/history.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyKind  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show local activity history",
	Long: `Lists the links this machine produced and consumed. The history lives
in a local sqlite database and never contains credential plaintext.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := app.History(historyKind, historyLimit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}

		if jsonOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No history yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "When\tAction\tRemote ID\tName\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t\n")

		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n",
				e.CreatedAt.Format("2006-01-02 15:04"),
				e.Kind,
				e.RemoteID,
				e.Name,
			)
		}

		w.Flush()
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "filter by action (shared, viewed, requested, fulfilled, revealed)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of entries")
}
