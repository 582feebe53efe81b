package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// SplitKey is a symmetric credential key split into two XOR shares. The
// public share travels only inside the share link; the private share is the
// half the store keeps. Neither share alone says anything about the key.
type SplitKey struct {
	PublicShare  []byte
	PrivateShare []byte
}

// EncryptCredential encrypts a credential payload with a fresh one-off key
// and returns the key split into its two shares together with the
// ciphertext. The reassembled key exists only for the duration of the call.
func (s *Suite) EncryptCredential(plaintext []byte) (SplitKey, []byte, error) {
	key, err := randomBytes(s.cfg.KeySize)
	if err != nil {
		return SplitKey{}, nil, fmt.Errorf("generate credential key: %w", err)
	}
	defer clearBytes(key)

	publicShare, err := randomBytes(s.cfg.KeySize)
	if err != nil {
		return SplitKey{}, nil, fmt.Errorf("generate public share: %w", err)
	}

	privateShare := xorBytes(key, publicShare)

	ciphertext, err := sealWithKey(key, plaintext)
	if err != nil {
		return SplitKey{}, nil, fmt.Errorf("encrypt credential: %w", err)
	}

	return SplitKey{
		PublicShare:  publicShare,
		PrivateShare: privateShare,
	}, ciphertext, nil
}

// DecryptCredential reconstructs the key from both shares and performs
// authenticated decryption. Any wrong, truncated or tampered input fails
// with ErrDecryption.
func (s *Suite) DecryptCredential(ciphertext, publicShare, privateShare []byte) ([]byte, error) {
	if len(publicShare) != s.cfg.KeySize || len(privateShare) != s.cfg.KeySize {
		return nil, fmt.Errorf("%w: bad key share length", ErrDecryption)
	}

	key := xorBytes(publicShare, privateShare)
	defer clearBytes(key)

	plaintext, err := openWithKey(key, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// sealWithKey encrypts with AES-GCM, nonce prepended to the ciphertext.
func sealWithKey(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// openWithKey decrypts AES-GCM output produced by sealWithKey.
func openWithKey(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open ciphertext: %w", err)
	}

	return plaintext, nil
}
