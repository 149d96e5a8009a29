// Package account threads the active Cloudflare account through the call
// tree as an explicit context value. Every tool checks the precondition
// before touching the upstream API.
package account

import "context"

// Account identifies the Cloudflare account tool calls operate on
type Account struct {
	ID string `json:"id"`
}

type contextKey struct{}

// WithActive returns a context carrying the active account
func WithActive(ctx context.Context, acct Account) context.Context {
	return context.WithValue(ctx, contextKey{}, acct)
}

// Active returns the active account, if one has been selected
func Active(ctx context.Context) (Account, bool) {
	acct, ok := ctx.Value(contextKey{}).(Account)
	if !ok || acct.ID == "" {
		return Account{}, false
	}
	return acct, true
}
