// cmd/client/cmd/request/create.go
package request

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var createFields []string

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a credential request and get a fulfill link",
	Long: `Creates a request for the given fields and prints the fulfill link.

Fields are passed as repeated --field flags in the form
name[:type[:description]] where type is one of the credential types
(password, api_key, note, card; default password), e.g.:

  credshare request create --field "vpn_password:password:Your VPN password" \
    --field "notes:note"

The secret phrase is prompted without echo. It is the only way to reveal
the answers later; if you lose it, the answers are gone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		specs, err := parseFieldSpecs(createFields)
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			return fmt.Errorf("at least one --field is required")
		}

		phrase, err := promptSecret("Secret phrase")
		if err != nil {
			return err
		}
		confirm, err := promptSecret("Repeat secret phrase")
		if err != nil {
			return err
		}
		if phrase != confirm {
			return fmt.Errorf("phrases do not match")
		}
		if len(phrase) < 8 {
			return fmt.Errorf("secret phrase must be at least 8 characters")
		}

		resp, err := app.CreateRequest(cmd.Context(), client.CreateRequestRequest{
			Fields:       specs,
			SecretPhrase: phrase,
		})
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		fmt.Println()
		fmt.Printf("Request %d created.\n", resp.ID)
		fmt.Println("Send this link to whoever holds the credentials:")
		fmt.Println()
		fmt.Printf("  %s\n", color.GreenString(resp.FulfillLink))
		fmt.Println()
		fmt.Printf("Once fulfilled, reveal the answers with: credshare request reveal %d\n", resp.ID)

		return nil
	},
}

func parseFieldSpecs(raw []string) ([]client.RequestFieldSpec, error) {
	specs := make([]client.RequestFieldSpec, 0, len(raw))
	for _, f := range raw {
		parts := strings.SplitN(f, ":", 3)
		if parts[0] == "" {
			return nil, fmt.Errorf("malformed --field %q, expected name[:type[:description]]", f)
		}

		spec := client.RequestFieldSpec{Name: parts[0], Type: "password"}
		if len(parts) > 1 && parts[1] != "" {
			spec.Type = parts[1]
		}
		if len(parts) > 2 {
			spec.Description = parts[2]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func init() {
	CreateCmd.Flags().StringArrayVar(&createFields, "field", nil, "requested field as name[:type[:description]], type one of password|api_key|note|card (repeatable)")
}
