// Package middleware provides decorators for issue collaborators.
package middleware

import "github.com/felixgeelhaar/schemaissues/domain/issue"

// Middleware wraps a collaborator with additional behavior.
type Middleware func(next issue.Collaborator) issue.Collaborator

// Chain applies middlewares to c. The first middleware is outermost.
func Chain(c issue.Collaborator, mws ...Middleware) issue.Collaborator {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}
