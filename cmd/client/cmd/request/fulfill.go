// cmd/client/cmd/request/fulfill.go
package request

import (
	"fmt"

	"github.com/spf13/cobra"

	"credshare/internal/app/client"
)

var FulfillCmd = &cobra.Command{
	Use:   "fulfill <link>",
	Short: "Answer a credential request through its link",
	Long: `Opens a fulfill link, prompts for each requested field, and submits the
answers. Fields of a sensitive credential type are read without echo.

The answers are encrypted with the public key carried in the link; only
the requester's secret phrase can decrypt them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		link := args[0]

		// The link token authorizes the field lookup; no session needed.
		req, err := app.Describe(cmd.Context(), link)
		if err != nil {
			return fmt.Errorf("describe request: %w", err)
		}
		if req.Status != "pending" {
			return fmt.Errorf("request is already %s", req.Status)
		}

		types, err := app.ListTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch credential types: %w", err)
		}

		fmt.Printf("Request %d asks for %d field(s):\n\n", req.ID, len(req.Fields))

		answers := make([]client.Answer, 0, len(req.Fields))
		for _, f := range req.Fields {
			label := f.Name
			if f.Description != "" {
				label = fmt.Sprintf("%s (%s)", f.Name, f.Description)
			}

			var value string
			if isSensitiveType(types, f.Type) {
				value, err = promptSecret(label)
			} else {
				value, err = promptLine(label)
			}
			if err != nil {
				return err
			}
			if value == "" {
				return fmt.Errorf("field %q is required", f.Name)
			}

			answers = append(answers, client.Answer{Name: f.Name, Value: value})
		}

		if err := app.Fulfill(cmd.Context(), link, answers); err != nil {
			return fmt.Errorf("fulfill request: %w", err)
		}

		fmt.Println()
		fmt.Println("Request fulfilled. The answers were encrypted before submission.")
		return nil
	},
}

// isSensitiveType reports whether a credential type carries any sensitive
// field per the server's type registry. Unknown types get no echo.
func isSensitiveType(types client.TypeList, credType string) bool {
	for _, t := range types.Types {
		if t.Type != credType {
			continue
		}
		for _, f := range t.Fields {
			if f.Sensitive {
				return true
			}
		}
		return false
	}
	return true
}
