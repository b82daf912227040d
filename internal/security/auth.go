// Package security guards the local API. The dashboard core binds to
// loopback by default, but a bearer token can still be required for setups
// where the socket is shared.
package security

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

type BearerAuth struct {
	Enabled bool
	Token   string
}

// Authorize checks the Authorization header in constant time. Disabled auth
// admits everything.
func (a BearerAuth) Authorize(r *http.Request) bool {
	if !a.Enabled {
		return true
	}
	head := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(head, prefix) {
		return false
	}
	candidate := strings.TrimSpace(strings.TrimPrefix(head, prefix))
	if len(candidate) != len(a.Token) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.Token)) == 1
}
