package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Addresses are base58-encoded ed25519 key material with a one-letter
// prefix: G for public account addresses, S for secret seeds.
const (
	publicKeyPrefix = "G"
	secretKeyPrefix = "S"
)

// GenerateKeypair produces a fresh signing pair from the system entropy
// source.
func GenerateKeypair() (publicKey string, secretKey string, err error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", errors.Wrap(err, "keypair generation failed")
	}

	seed := private.Seed()
	return publicKeyPrefix + base58.Encode(public),
		secretKeyPrefix + base58.Encode(seed),
		nil
}

// ParseSecret recovers the signing key and its account address from a
// secret seed string.
func ParseSecret(secretKey string) (ed25519.PrivateKey, string, error) {
	if !strings.HasPrefix(secretKey, secretKeyPrefix) {
		return nil, "", errors.New("invalid secret key prefix")
	}

	seed, err := base58.Decode(strings.TrimPrefix(secretKey, secretKeyPrefix))
	if err != nil {
		return nil, "", errors.Wrap(err, "invalid secret key encoding")
	}
	if len(seed) != ed25519.SeedSize {
		return nil, "", errors.New("invalid secret key length")
	}

	private := ed25519.NewKeyFromSeed(seed)
	public := private.Public().(ed25519.PublicKey)
	return private, publicKeyPrefix + base58.Encode(public), nil
}
