package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareToken_RoundTrip(t *testing.T) {
	s := testSuite(t)

	share, err := randomBytes(s.KeySize())
	require.NoError(t, err)

	token := EncodeKeyToken(share)
	decoded, err := s.DecodeShareToken(token)
	require.NoError(t, err)
	assert.Equal(t, share, decoded)
}

func TestDecodeShareToken_Malformed(t *testing.T) {
	s := testSuite(t)

	share, err := randomBytes(s.KeySize())
	require.NoError(t, err)
	valid := EncodeKeyToken(share)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64url", "not!!valid@@token"},
		{"truncated", valid[:len(valid)-4]},
		{"wrong length", EncodeKeyToken(share[:16])},
		{"standard base64 padding", valid + "=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.DecodeShareToken(tt.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestDecodePublicKeyToken(t *testing.T) {
	s := testSuite(t)

	pair, err := s.GenerateRequestKeyPair()
	require.NoError(t, err)

	token := EncodeKeyToken(pair.Public)
	decoded, err := s.DecodePublicKeyToken(token)
	require.NoError(t, err)
	assert.Equal(t, pair.Public, decoded)

	// decodes as base64 but is not a public key
	_, err = s.DecodePublicKeyToken(EncodeKeyToken([]byte("garbage bytes")))
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = s.DecodePublicKeyToken(token[:len(token)-6])
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestShareLink_Idempotent(t *testing.T) {
	share := []byte{0x01, 0x02, 0xff}

	a := ShareLink("https://credshare.example.com/", 42, share)
	b := ShareLink("https://credshare.example.com", 42, share)
	assert.Equal(t, a, b)
	assert.Equal(t, "https://credshare.example.com/s/42#"+EncodeKeyToken(share), a)
}

func TestFulfillLink(t *testing.T) {
	s := testSuite(t)

	pair, err := s.GenerateRequestKeyPair()
	require.NoError(t, err)

	link := FulfillLink("https://credshare.example.com", 7, pair.Public)
	assert.Equal(t, "https://credshare.example.com/r/7#"+EncodeKeyToken(pair.Public), link)

	// the token inside the link survives the trip back
	token := link[len("https://credshare.example.com/r/7#"):]
	decoded, err := s.DecodePublicKeyToken(token)
	require.NoError(t, err)
	assert.Equal(t, pair.Public, decoded)
}
