package external

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tivit/users-api/internal/api/metrics"
)

// refreshMargin is how early a credential is refreshed before its expiry, so
// a request never leaves with a credential about to die mid-flight.
const refreshMargin = 60 * time.Second

// TokenFetcher issues a fresh downstream credential.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (Credential, error)
}

// TokenCache holds at most one downstream credential per process and refreshes
// it shortly before expiry. Concurrent refreshes collapse into a single fetch;
// a failed refresh never clobbers a still-valid cached value, and an expired
// credential is never served.
type TokenCache struct {
	fetcher TokenFetcher
	log     zerolog.Logger

	mu    sync.RWMutex
	cred  Credential
	group singleflight.Group
}

func NewTokenCache(fetcher TokenFetcher, log zerolog.Logger) *TokenCache {
	return &TokenCache{fetcher: fetcher, log: log}
}

// Credential returns a currently-valid downstream credential, fetching a
// fresh one when the cache is empty or within the refresh margin.
func (tc *TokenCache) Credential(ctx context.Context) (string, error) {
	if cred, ok := tc.cached(refreshMargin); ok {
		return cred.Token, nil
	}

	v, err, _ := tc.group.Do("token", func() (any, error) {
		// A flight that just finished may have refreshed already.
		if cred, ok := tc.cached(refreshMargin); ok {
			return cred.Token, nil
		}

		start := time.Now()
		fresh, err := tc.fetcher.FetchToken(ctx)
		metrics.ExternalFetchDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ExternalFetchTotal.WithLabelValues("error").Inc()
			return "", err
		}
		metrics.ExternalFetchTotal.WithLabelValues("success").Inc()

		tc.mu.Lock()
		tc.cred = fresh
		tc.mu.Unlock()

		tc.log.Debug().Time("expires_at", fresh.ExpiresAt).Msg("downstream credential refreshed")
		return fresh.Token, nil
	})
	if err != nil {
		// Inside the margin a credential is refreshed eagerly but is still
		// usable; fall back to it rather than failing the request.
		if cred, ok := tc.cached(0); ok {
			tc.log.Warn().Err(err).Msg("credential refresh failed, serving cached value")
			return cred.Token, nil
		}
		return "", err
	}
	return v.(string), nil
}

// cached returns the stored credential if it is valid for at least margin
// more time.
func (tc *TokenCache) cached(margin time.Duration) (Credential, bool) {
	tc.mu.RLock()
	cred := tc.cred
	tc.mu.RUnlock()

	if cred.Token == "" {
		return Credential{}, false
	}
	if !time.Now().Before(cred.ExpiresAt.Add(-margin)) {
		return Credential{}, false
	}
	return cred, true
}
