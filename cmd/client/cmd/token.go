// cmd/client/cmd/token.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API token for this machine",
	Long: `Prompts for the API token issued by your workspace administrator and
stores it with owner-only permissions. The token authenticates share,
request and list operations; viewing and fulfilling links needs none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("API token: ")
		token, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if len(token) == 0 {
			return fmt.Errorf("token must not be empty")
		}

		if err := app.SaveToken(string(token)); err != nil {
			return err
		}

		fmt.Println("Token saved.")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
}
