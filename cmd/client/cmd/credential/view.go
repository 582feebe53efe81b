// cmd/client/cmd/credential/view.go
package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var viewFormat string

var ViewCmd = &cobra.Command{
	Use:   "view <link>",
	Short: "Open a share link and consume one view",
	Long: `Opens a share link and prints the credential. Each successful view is
counted; once the view limit or expiry is hit the link is dead and the
server discards its half of the key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := app.View(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("view credential: %w", err)
		}

		if resp.IsExpired {
			fmt.Println(color.RedString("This link has expired. The credential can no longer be viewed."))
			return nil
		}

		if viewFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(resp)
		}

		fmt.Printf("%s (%s)\n\n", color.CyanString(resp.Name), resp.Type)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for name, value := range resp.Fields {
			fmt.Fprintf(w, "%s\t%s\t\n", name, value)
		}
		w.Flush()

		return nil
	},
}

func init() {
	ViewCmd.Flags().StringVarP(&viewFormat, "format", "f", "plain", "output format (plain, json)")
}
