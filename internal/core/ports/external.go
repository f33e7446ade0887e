package ports

import "context"

// CredentialSource supplies a currently-valid downstream credential, fetching
// a fresh one only when the cached value is about to expire.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// ExternalGateway forwards a request to the downstream service with a
// currently-valid credential attached.
type ExternalGateway interface {
	Get(ctx context.Context, path string) ([]byte, error)
}
