package credential

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type CredType string

const (
	CredTypePassword CredType = "password"
	CredTypeAPIKey   CredType = "api_key"
	CredTypeNote     CredType = "note"
	CredTypeCard     CredType = "card"
)

// FieldSpec describes one field of a credential type: what it is called,
// how a UI should label it, and whether it must be masked on display.
type FieldSpec struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Sensitive bool   `json:"sensitive"`
	Required  bool   `json:"required"`
}

// fieldSchemas is the type registry: every credential type declares its own
// field schema here instead of carrying free-form payloads.
var fieldSchemas = map[CredType][]FieldSpec{
	CredTypePassword: {
		{Name: "username", Label: "Username", Required: true},
		{Name: "password", Label: "Password", Sensitive: true, Required: true},
		{Name: "url", Label: "URL"},
		{Name: "notes", Label: "Notes"},
	},
	CredTypeAPIKey: {
		{Name: "apiKey", Label: "API key", Sensitive: true, Required: true},
		{Name: "service", Label: "Service"},
		{Name: "notes", Label: "Notes"},
	},
	CredTypeNote: {
		{Name: "content", Label: "Content", Sensitive: true, Required: true},
	},
	CredTypeCard: {
		{Name: "cardNumber", Label: "Card number", Sensitive: true, Required: true},
		{Name: "cardHolder", Label: "Card holder", Required: true},
		{Name: "expiry", Label: "Expiry", Required: true},
		{Name: "cvv", Label: "CVV", Sensitive: true, Required: true},
	},
}

// Types lists all registered credential types.
func Types() []CredType {
	return []CredType{CredTypePassword, CredTypeAPIKey, CredTypeNote, CredTypeCard}
}

func (CredType) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(CredTypePassword),
			string(CredTypeAPIKey),
			string(CredTypeNote),
			string(CredTypeCard),
		},
		Description: "Credential type",
		Examples:    []any{CredTypePassword},
	}
}

// Validate implements huma.Validatable.
func (t CredType) Validate() error {
	if _, ok := fieldSchemas[t]; !ok {
		return fmt.Errorf("unknown credential type: %s", t)
	}
	return nil
}

func (t CredType) String() string {
	return string(t)
}

// Fields returns the field schema of the type.
func (t CredType) Fields() []FieldSpec {
	return fieldSchemas[t]
}

// ValidatePayload checks a plaintext payload against the type's schema:
// every required field present and non-empty, no fields the schema does not
// declare.
func (t CredType) ValidatePayload(fields map[string]string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	known := make(map[string]FieldSpec, len(fieldSchemas[t]))
	for _, spec := range fieldSchemas[t] {
		known[spec.Name] = spec
	}

	for name := range fields {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: field %q not declared for type %s", ErrInvalidPayload, name, t)
		}
	}
	for _, spec := range fieldSchemas[t] {
		if spec.Required && fields[spec.Name] == "" {
			return fmt.Errorf("%w: field %q is required for type %s", ErrInvalidPayload, spec.Name, t)
		}
	}
	return nil
}
