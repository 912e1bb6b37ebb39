package security

import (
	"errors"
	"fmt"

	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

// HostTokenVerifier checks HS256 tokens minted by the owning registry.
// The gate only verifies, it never signs; the shared secret is provisioned
// out of band.
type HostTokenVerifier struct {
	secret []byte
	issuer string
}

func NewHostTokenVerifier(secret, issuer string) (*HostTokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("host auth secret is required")
	}
	return &HostTokenVerifier{secret: []byte(secret), issuer: issuer}, nil
}

func (v *HostTokenVerifier) Verify(raw string) (ports.HostClaims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return ports.HostClaims{}, fmt.Errorf("parse host token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return ports.HostClaims{}, errors.New("invalid host token")
	}
	return ports.HostClaims{Issuer: claims.Issuer, Subject: claims.Subject}, nil
}
