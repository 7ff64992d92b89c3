package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingKID   = errors.New("jwtx: missing kid")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Signer issues access tokens with one Ed25519 key. The kid header lets the
// verifier pick the matching public key from the KeySet.
type Signer struct {
	kid string
	key ed25519.PrivateKey
}

// ParseSigner loads a PKCS8 PEM Ed25519 private key.
func ParseSigner(kid string, pemKey []byte) (*Signer, error) {
	if kid == "" {
		return nil, ErrMissingKID
	}

	block, _ := pem.Decode(pemKey)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, errors.New("jwtx: expected a PKCS8 PRIVATE KEY block")
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: key is %T, not Ed25519", priv)
	}
	return &Signer{kid: kid, key: key}, nil
}

func (s *Signer) KID() string { return s.kid }

// Sign serializes claims into a compact JWS. Tokens without a subject or
// issuer would never verify, so they are refused here.
func (s *Signer) Sign(c Claims) (string, error) {
	if c.Subject == "" || c.Issuer == "" {
		return "", ErrInvalidClaim
	}
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the verification key for the published key set.
func (s *Signer) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", AlgorithmEdDSA, s.key.Public().(ed25519.PublicKey))
}

// Verifier turns a raw bearer token into verified Claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

type keySetVerifier struct {
	keys     *KeySet
	issuer   string
	audience []string
	parser   *jwt.Parser
}

// NewVerifier checks signatures against keys and requires issuer and, when
// set, one of audience.
func NewVerifier(keys *KeySet, issuer string, audience []string) Verifier {
	return &keySetVerifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{AlgorithmEdDSA}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *keySetVerifier) Verify(raw string) (Claims, error) {
	var c Claims
	_, err := v.parser.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMissingKID
		}
		return v.keys.Get(kid)
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return Claims{}, ErrNotYetValid
	default:
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	// Role and company_id are not checked here: Identity collapses an unknown
	// role to none.
	if c.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}
	if err := c.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := c.ValidateAudience(v.audience); err != nil {
		return Claims{}, err
	}
	return c, nil
}
