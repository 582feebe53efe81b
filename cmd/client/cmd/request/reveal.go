// cmd/client/cmd/request/reveal.go
package request

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var revealFormat string

var RevealCmd = &cobra.Command{
	Use:   "reveal <id>",
	Short: "Decrypt the answers of a fulfilled request",
	Long: `Reveals the answers of a fulfilled request. The secret phrase chosen at
creation time is prompted without echo; a wrong phrase cannot be told
apart from corrupted data, both simply fail to decrypt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id %q", args[0])
		}

		phrase, err := promptSecret("Secret phrase")
		if err != nil {
			return err
		}

		answers, err := app.Reveal(cmd.Context(), id, phrase)
		if err != nil {
			return fmt.Errorf("reveal request: %w", err)
		}

		if revealFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(answers)
		}

		fmt.Println()
		fmt.Println(color.CyanString("Revealed answers:"))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, a := range answers {
			fmt.Fprintf(w, "%s\t%s\t\n", a.Name, a.Value)
		}
		w.Flush()

		return nil
	},
}

func init() {
	RevealCmd.Flags().StringVarP(&revealFormat, "format", "f", "plain", "output format (plain, json)")
}
