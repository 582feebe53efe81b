// cmd/client/cmd/request/reject.go
package request

import (
	"fmt"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var RejectCmd = &cobra.Command{
	Use:   "reject <link>",
	Short: "Decline a credential request",
	Long: `Rejects a request through its fulfill link. The request moves to its
terminal rejected state and can no longer be fulfilled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Reject(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("reject request: %w", err)
		}

		fmt.Println("Request rejected.")
		return nil
	},
}
