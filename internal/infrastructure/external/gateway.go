package external

import (
	"context"

	"github.com/tivit/users-api/internal/core/ports"
)

// Gateway forwards requests to the downstream service, attaching the shared
// cached credential.
type Gateway struct {
	client *Client
	cache  ports.CredentialSource
}

func NewGateway(client *Client, cache ports.CredentialSource) *Gateway {
	return &Gateway{client: client, cache: cache}
}

// Get resolves a currently-valid credential and fetches the downstream path
// with it.
func (g *Gateway) Get(ctx context.Context, path string) ([]byte, error) {
	credential, err := g.cache.Credential(ctx)
	if err != nil {
		return nil, err
	}
	return g.client.Get(ctx, path, credential)
}
