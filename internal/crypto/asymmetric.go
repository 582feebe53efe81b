package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeyPair holds a freshly generated request keypair in DER form: the public
// key (PKIX) goes into the fulfillment link, the private key (PKCS#8) must
// be sealed with the requester's secret phrase before it is stored.
type KeyPair struct {
	Public  []byte
	Private []byte
}

// Fingerprint digests a DER-encoded key. A request stores the fingerprint
// of its public key so a presented link token can be checked without
// persisting the key itself.
func Fingerprint(der []byte) []byte {
	sum := sha256.Sum256(der)
	return sum[:]
}

// GenerateRequestKeyPair generates a fresh RSA keypair for a single
// credentials request. Keys are never reused across requests.
func (s *Suite) GenerateRequestKeyPair() (KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, s.cfg.RSABits)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate rsa key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal private key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal public key: %w", err)
	}

	return KeyPair{Public: pubDER, Private: privDER}, nil
}

// EncryptWithPublicKey encrypts a fulfillment answer under the request's
// public key (RSA-OAEP/SHA-256). Holders of the public key cannot decrypt
// anything, including answers they submitted themselves.
func (s *Suite) EncryptWithPublicKey(plaintext, publicDER []byte) ([]byte, error) {
	pub, err := parsePublicKey(publicDER)
	if err != nil {
		return nil, err
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypt with public key: %w", err)
	}
	return ciphertext, nil
}

// DecryptWithPrivateKey decrypts a fulfillment answer with the recovered
// private key. Fails with ErrDecryption on any wrong or corrupt input.
func (s *Suite) DecryptWithPrivateKey(ciphertext, privateDER []byte) ([]byte, error) {
	priv, err := parsePrivateKey(privateDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

// SealPrivateKey encrypts a request private key under a key derived from the
// secret phrase with Argon2id. The phrase itself is never stored in any
// form; only its role as KDF input exists. Output is salt ∥ AES-GCM box.
func (s *Suite) SealPrivateKey(privateDER []byte, phrase string) ([]byte, error) {
	salt, err := randomBytes(s.cfg.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := s.deriveKey(phrase, salt)
	defer clearBytes(key)

	sealed, err := sealWithKey(key, privateDER)
	if err != nil {
		return nil, fmt.Errorf("seal private key: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(sealed))
	out = append(out, salt...)
	out = append(out, sealed...)
	return out, nil
}

// OpenPrivateKey recovers a request private key sealed by SealPrivateKey.
// A wrong phrase fails authentication and returns ErrInvalidPhrase.
func (s *Suite) OpenPrivateKey(sealed []byte, phrase string) ([]byte, error) {
	if len(sealed) < s.cfg.SaltSize {
		return nil, fmt.Errorf("%w: sealed key too short", ErrDecryption)
	}

	salt, box := sealed[:s.cfg.SaltSize], sealed[s.cfg.SaltSize:]

	key := s.deriveKey(phrase, salt)
	defer clearBytes(key)

	privateDER, err := openWithKey(key, box)
	if err != nil {
		return nil, ErrInvalidPhrase
	}
	return privateDER, nil
}

func (s *Suite) deriveKey(phrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(phrase), salt,
		s.cfg.Argon2Time, s.cfg.Argon2Memory, s.cfg.Argon2Threads,
		uint32(s.cfg.KeySize))
}

func parsePublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", key)
	}
	return pub, nil
}

func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type %T", key)
	}
	return priv, nil
}
