package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
)

// AlgorithmEdDSA is the only signing algorithm issued by the service.
const AlgorithmEdDSA = "EdDSA"

// KeyManager owns the signing keys of a running instance together with the
// matching verifier and published key set.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []*Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is the iss claim stamped on and required of every token.
	Issuer string

	// Audience values required on verification. Empty disables the check.
	Audience []string

	// NumKeys is how many signing keys to generate. Defaults to 2, capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates in-memory Ed25519 signing keys. Tokens do
// not survive a restart, which keeps dashboard sessions short-lived.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	n := opts.NumKeys
	if n <= 0 {
		n = 2
	}
	if n > 10 {
		n = 10
	}

	keyset := NewKeySet()
	signers := make([]*Signer, 0, n)

	for i := range n {
		signer, err := generateEdDSASigner()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate signer %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifier(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

func generateEdDSASigner() (*Signer, error) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, err
	}
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	return ParseSigner("adminhub-"+tok, pemKey)
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns one of the active signers at random.
func (km *KeyManager) GetSigner() *Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Sign signs claims with one of the active keys.
func (km *KeyManager) Sign(c Claims) (string, error) {
	s := km.GetSigner()
	if s == nil {
		return "", ErrNoKey
	}
	return s.Sign(c)
}
