package account

import (
	"context"
	"net/http"

	"github.com/foliogen/foliogen/pkg/cookie"
	"github.com/foliogen/foliogen/svc/auth"
)

// Authorizer re-validates a session token and resolves its account.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*auth.Account, error)
}

type contextKey struct{ name string }

var accountKey = contextKey{"account"}

// CurrentAccount returns the account placed in the context by RequireSession.
func CurrentAccount(ctx context.Context) (*auth.Account, bool) {
	account, ok := ctx.Value(accountKey).(*auth.Account)
	return account, ok
}

// RequireSession guards routes behind a valid session cookie. The token is
// re-verified on every request; a missing, invalid or expired one gets 401.
func RequireSession(authz Authorizer, cookies *cookie.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.Get(r, SessionCookieName)
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Authentication required."})
				return
			}

			account, err := authz.Authorize(r.Context(), token)
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Authentication required."})
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, account)))
		})
	}
}
