// cmd/client/cmd/credential/delete.go
package credential

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var deleteForce bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a credential and its stored key share",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid credential id %q", args[0])
		}

		if !deleteForce {
			fmt.Printf("Delete credential %d? This cannot be undone [y/N]: ", id)
			var answer string
			fmt.Scanln(&answer)
			if strings.ToLower(answer) != "y" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if err := app.DeleteCredential(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}

		fmt.Printf("Credential %d deleted.\n", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}
