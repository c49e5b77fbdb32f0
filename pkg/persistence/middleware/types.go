// Package middleware provides composable wrappers around a SessionStore,
// adding behavior like encryption at rest or PII masking without touching
// the store implementations.
package middleware

import "github.com/aretw0/conduit/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares right to left, so the first one listed is the
// outermost wrapper.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
