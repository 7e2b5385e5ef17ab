package auth

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LoginPath is the redirect target for denied requests.
const LoginPath = "/login"

// Decision is the outcome of a guard evaluation.
type Decision struct {
	Allow    bool
	Redirect string // set when Allow is false
}

// Allow lets the request through.
var Allow = Decision{Allow: true} //nolint:gochecknoglobals

// DenyRedirect denies the request and sends the client to target.
func DenyRedirect(target string) Decision {
	return Decision{Redirect: target}
}

// GuardFunc decides on a single condition. sess is nil for anonymous requests.
type GuardFunc func(ctx context.Context, sess *Session) Decision

// Pipeline is an ordered list of guards evaluated one after another.
type Pipeline []GuardFunc

// Evaluate returns the first deny, or Allow if every guard allows.
func (p Pipeline) Evaluate(ctx context.Context, sess *Session) Decision {
	for _, guard := range p {
		if d := guard(ctx, sess); !d.Allow {
			return d
		}
	}

	return Allow
}

// RequireSession denies anonymous requests.
func RequireSession(_ context.Context, sess *Session) Decision {
	if sess == nil || sess.Token == "" {
		return DenyRedirect(LoginPath)
	}

	return Allow
}

// RequireLivePrincipal denies sessions whose principal is gone from store.
// Store failures deny as well.
func RequireLivePrincipal(store CredentialStore) GuardFunc {
	return func(ctx context.Context, sess *Session) Decision {
		if sess == nil {
			return DenyRedirect(LoginPath)
		}

		exists, err := store.Exists(ctx, sess.Principal.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sess.Principal.ID).Msg("guard: failed to check principal")

			return DenyRedirect(LoginPath)
		}

		if !exists {
			return DenyRedirect(LoginPath)
		}

		return Allow
	}
}
