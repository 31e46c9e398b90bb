package transport

import (
	"context"

	"github.com/foodhub/foodhub-go/core"
)

// TokenSource yields the bearer credential to attach to an outgoing request,
// or "" when anonymous. It is consulted on every request so a token cleared
// by logout is never attached afterwards: there is no cached copy to go
// stale.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StorageTokenSource reads the credential from the durable store on each
// request, mirroring how the persisted token is the single source of truth
// for the session credential.
type StorageTokenSource struct {
	Storage core.Storage
}

// Token returns the persisted credential, or "" when absent or unreadable.
func (s *StorageTokenSource) Token(ctx context.Context) string {
	token, err := s.Storage.Get(ctx, core.StorageKeyToken)
	if err != nil {
		return ""
	}
	return token
}

// StaticTokenSource always returns the same token. Used in tests and for
// service-to-service calls with a fixed credential.
type StaticTokenSource struct {
	Value string
}

// Token returns the fixed token.
func (s *StaticTokenSource) Token(ctx context.Context) string { return s.Value }
