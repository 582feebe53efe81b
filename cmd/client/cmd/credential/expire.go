// cmd/client/cmd/credential/expire.go
package credential

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var ExpireCmd = &cobra.Command{
	Use:   "expire <id>",
	Short: "Kill a share link immediately",
	Long: `Force-expires a credential. The link stops working at once, regardless
of remaining views or expiry time. This cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid credential id %q", args[0])
		}

		if err := app.ExpireCredential(cmd.Context(), id); err != nil {
			return fmt.Errorf("expire credential: %w", err)
		}

		fmt.Printf("Credential %d expired. Its link is now dead.\n", id)
		return nil
	},
}
