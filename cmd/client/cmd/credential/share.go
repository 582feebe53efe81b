// cmd/client/cmd/credential/share.go
package credential

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var (
	shareType   string
	shareName   string
	shareFields []string
	expiresIn   time.Duration
	maxViews    int
)

var ShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share a credential through a one-time link",
	Long: `Shares a credential and prints the link to hand out.

Field values can be passed with repeated --field name=value flags. Any
required field not given on the command line is prompted for; sensitive
fields are read without echo.

The link is shown exactly once. The server keeps no copy of it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if shareType == "" {
			shareType, err = chooseType(cmd, app)
			if err != nil {
				return err
			}
		}

		schema, err := typeSchema(cmd, app, shareType)
		if err != nil {
			return err
		}

		if shareName == "" {
			shareName, err = promptLine("Credential name")
			if err != nil {
				return err
			}
			if shareName == "" {
				return fmt.Errorf("credential name is required")
			}
		}

		fields, err := collectFields(schema)
		if err != nil {
			return err
		}

		req := client.ShareRequest{
			Type:   shareType,
			Name:   shareName,
			Fields: fields,
		}
		if expiresIn > 0 {
			expiresAt := time.Now().Add(expiresIn)
			req.ExpiresAt = &expiresAt
		}
		if maxViews > 0 {
			req.MaxViews = &maxViews
		}

		resp, err := app.Share(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("share credential: %w", err)
		}

		fmt.Println()
		fmt.Printf("Credential '%s' shared (id %d).\n", shareName, resp.ID)
		fmt.Println("Send this link to the recipient; it will not be shown again:")
		fmt.Println()
		fmt.Printf("  %s\n", color.GreenString(resp.ShareLink))
		fmt.Println()
		if maxViews > 0 {
			fmt.Printf("The link dies after %d view(s)", maxViews)
			if expiresIn > 0 {
				fmt.Printf(" or at %s", time.Now().Add(expiresIn).Format(time.RFC1123))
			}
			fmt.Println(".")
		} else if expiresIn > 0 {
			fmt.Printf("The link dies at %s.\n", time.Now().Add(expiresIn).Format(time.RFC1123))
		}

		return nil
	},
}

func chooseType(cmd *cobra.Command, app *client.App) (string, error) {
	types, err := app.ListTypes(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("fetch credential types: %w", err)
	}

	fmt.Println("Choose the credential type:")
	for i, t := range types.Types {
		fmt.Printf("%d. %s\n", i+1, t.Type)
	}
	fmt.Printf("Your choice [1-%d]: ", len(types.Types))

	var choice int
	if _, err := fmt.Scanln(&choice); err != nil || choice < 1 || choice > len(types.Types) {
		return "", fmt.Errorf("invalid choice")
	}

	return types.Types[choice-1].Type, nil
}

func typeSchema(cmd *cobra.Command, app *client.App, credType string) (client.TypeInfo, error) {
	types, err := app.ListTypes(cmd.Context())
	if err != nil {
		return client.TypeInfo{}, fmt.Errorf("fetch credential types: %w", err)
	}

	for _, t := range types.Types {
		if t.Type == credType {
			return t, nil
		}
	}

	known := make([]string, 0, len(types.Types))
	for _, t := range types.Types {
		known = append(known, t.Type)
	}
	return client.TypeInfo{}, fmt.Errorf("unknown credential type %q (known: %s)", credType, strings.Join(known, ", "))
}

func collectFields(schema client.TypeInfo) (map[string]string, error) {
	fields := make(map[string]string, len(schema.Fields))

	for _, kv := range shareFields {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --field %q, expected name=value", kv)
		}
		fields[name] = value
	}

	for _, f := range schema.Fields {
		if _, ok := fields[f.Name]; ok {
			continue
		}

		label := f.Label
		if !f.Required {
			label += " (optional, Enter to skip)"
		}

		var value string
		var err error
		if f.Sensitive {
			value, err = promptSecret(label)
		} else {
			value, err = promptLine(label)
		}
		if err != nil {
			return nil, err
		}

		if value == "" {
			if f.Required {
				return nil, fmt.Errorf("field %q is required", f.Name)
			}
			continue
		}
		fields[f.Name] = value
	}

	return fields, nil
}

func init() {
	ShareCmd.Flags().StringVarP(&shareType, "type", "t", "", "credential type (password, api_key, note, card)")
	ShareCmd.Flags().StringVarP(&shareName, "name", "n", "", "credential name")
	ShareCmd.Flags().StringArrayVar(&shareFields, "field", nil, "field value as name=value (repeatable)")
	ShareCmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "lifetime of the link, e.g. 24h (0 = no expiry)")
	ShareCmd.Flags().IntVar(&maxViews, "max-views", 1, "number of views before the link dies (0 = unlimited)")
}
