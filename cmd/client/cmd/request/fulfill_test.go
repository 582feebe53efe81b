// cmd/client/cmd/request/fulfill_test.go
package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credshare/internal/app/client"
)

func typeList() client.TypeList {
	return client.TypeList{Types: []client.TypeInfo{
		{
			Type: "password",
			Fields: []client.TypeField{
				{Name: "username", Label: "Username", Required: true},
				{Name: "password", Label: "Password", Sensitive: true, Required: true},
			},
		},
		{
			Type: "bookmark",
			Fields: []client.TypeField{
				{Name: "url", Label: "URL", Required: true},
			},
		},
	}}
}

func TestIsSensitiveType(t *testing.T) {
	types := typeList()

	t.Run("TypeWithSensitiveField", func(t *testing.T) {
		assert.True(t, isSensitiveType(types, "password"))
	})

	t.Run("TypeWithoutSensitiveField", func(t *testing.T) {
		assert.False(t, isSensitiveType(types, "bookmark"))
	})

	t.Run("UnknownTypeGetsNoEcho", func(t *testing.T) {
		assert.True(t, isSensitiveType(types, "secret"))
	})
}

func TestParseFieldSpecs(t *testing.T) {
	t.Run("DefaultsToPasswordType", func(t *testing.T) {
		specs, err := parseFieldSpecs([]string{"vpn_password"})
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, "password", specs[0].Type)
	})

	t.Run("ExplicitTypeAndDescription", func(t *testing.T) {
		specs, err := parseFieldSpecs([]string{"deploy_key:api_key:CI deploy key"})
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, "deploy_key", specs[0].Name)
		assert.Equal(t, "api_key", specs[0].Type)
		assert.Equal(t, "CI deploy key", specs[0].Description)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := parseFieldSpecs([]string{":password"})
		assert.Error(t, err)
	})
}
