package jwk

import (
	"context"
	"encoding/json"
	"fmt"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// Fetcher performs an HTTPS GET trusting the certificates at certPath.
type Fetcher interface {
	Get(ctx context.Context, uri string, headers map[string]string, certPath string) ([]byte, error)
}

// Selector picks one JWK out of the candidates of a key set.
type Selector interface {
	Select(candidates []json.RawMessage) (json.RawMessage, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(candidates []json.RawMessage) (json.RawMessage, error)

func (f SelectorFunc) Select(candidates []json.RawMessage) (json.RawMessage, error) {
	return f(candidates)
}

// SingleKeySelector resolves only sets with exactly one key.
type SingleKeySelector struct{}

func (SingleKeySelector) Select(candidates []json.RawMessage) (json.RawMessage, error) {
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: key set is empty", kerrors.ErrNoMatchingKey)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: %d keys", kerrors.ErrAmbiguousKeySet, len(candidates))
	}
}

// Resolver imports a single key from a remote JWKS.
type Resolver struct {
	Fetcher  Fetcher
	Selector Selector
}

// NewResolver returns a Resolver using SingleKeySelector.
func NewResolver(f Fetcher) *Resolver {
	return &Resolver{Fetcher: f, Selector: SingleKeySelector{}}
}

// ImportFromURI fetches the key set at jwksURI and imports the key chosen by
// the resolver's Selector.
func (r *Resolver) ImportFromURI(ctx context.Context, jwksURI, certPath string) (*Key, error) {
	if jwksURI == "" {
		return nil, fmt.Errorf("%w: jwks uri", kerrors.ErrNilArgument)
	}
	if certPath == "" {
		return nil, fmt.Errorf("%w: cert path", kerrors.ErrNilArgument)
	}
	if r.Fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher", kerrors.ErrNilArgument)
	}

	body, err := r.Fetcher.Get(ctx, jwksURI, nil, certPath)
	if err != nil {
		return nil, err
	}

	candidates, err := ParseKeySet(body)
	if err != nil {
		return nil, err
	}

	selector := r.Selector
	if selector == nil {
		selector = SingleKeySelector{}
	}
	chosen, err := selector.Select(candidates)
	if err != nil {
		return nil, err
	}
	return Import(string(chosen))
}

// ParseKeySet returns the raw members of the "keys" array of a JWKS document.
func ParseKeySet(body []byte) ([]json.RawMessage, error) {
	var doc struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: response is not a key set: %v", kerrors.ErrNoMatchingKey, err)
	}
	if doc.Keys == nil {
		return nil, fmt.Errorf("%w: response has no keys array", kerrors.ErrNoMatchingKey)
	}
	return doc.Keys, nil
}
