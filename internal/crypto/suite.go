package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// defaults for the Argon2id phrase KDF
	defaultArgon2Time    = 3
	defaultArgon2Memory  = 64 * 1024 // KiB
	defaultArgon2Threads = 4

	defaultKeySize  = 32 // AES-256
	defaultSaltSize = 16
	defaultRSABits  = 4096
)

// Config describes the cipher suite explicitly. There is no ambient or
// package-level crypto configuration: every Suite is built from a Config.
type Config struct {
	KeySize       int    // symmetric key length in bytes
	SaltSize      int    // KDF salt length in bytes
	RSABits       int    // request keypair modulus size
	Argon2Time    uint32 // Argon2id passes
	Argon2Memory  uint32 // Argon2id memory in KiB
	Argon2Threads uint8  // Argon2id parallelism
}

// DefaultConfig returns the production cipher suite parameters.
func DefaultConfig() Config {
	return Config{
		KeySize:       defaultKeySize,
		SaltSize:      defaultSaltSize,
		RSABits:       defaultRSABits,
		Argon2Time:    defaultArgon2Time,
		Argon2Memory:  defaultArgon2Memory,
		Argon2Threads: defaultArgon2Threads,
	}
}

// Suite is a stateless cipher suite. It holds parameters only, never key
// material; all key material lives exactly as long as a single call.
type Suite struct {
	cfg Config
}

func New(cfg Config) (*Suite, error) {
	if cfg.KeySize != 16 && cfg.KeySize != 24 && cfg.KeySize != 32 {
		return nil, fmt.Errorf("invalid symmetric key size: %d", cfg.KeySize)
	}
	if cfg.SaltSize < 8 {
		return nil, fmt.Errorf("salt size too small: %d", cfg.SaltSize)
	}
	if cfg.RSABits < 2048 {
		return nil, fmt.Errorf("rsa key size too small: %d", cfg.RSABits)
	}
	if cfg.Argon2Time == 0 || cfg.Argon2Memory == 0 || cfg.Argon2Threads == 0 {
		return nil, fmt.Errorf("argon2 parameters must be non-zero")
	}
	return &Suite{cfg: cfg}, nil
}

// KeySize reports the symmetric key length the suite expects in key shares
// and share-link tokens.
func (s *Suite) KeySize() int {
	return s.cfg.KeySize
}

// randomBytes generates cryptographically secure random bytes.
func randomBytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}
	return bytes, nil
}

// clearBytes zeroes sensitive data before it goes out of scope.
func clearBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
