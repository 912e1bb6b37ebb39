package ports

// HostClaims identifies the registry instance that signed a host token.
type HostClaims struct {
	Issuer  string
	Subject string
}

// HostTokenVerifier checks bearer tokens on mutating endpoints. Only the
// owning registry may initialize profiles, admit follows, or deliver
// transfer hooks.
type HostTokenVerifier interface {
	Verify(token string) (HostClaims, error)
}
