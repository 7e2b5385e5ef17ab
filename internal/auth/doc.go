// Package auth implements the login flow of authdemo.
//
// The flow has two states per request, anonymous and authenticated, and
// derives the state fresh from the session manager on every call. It holds
// no cross-request state and no locks; the credential store and the session
// manager are the only shared resources.
//
// # Collaborators
//
// CredentialStore persists principals and owns password hashing.
// LocalProvider is the gorm backed implementation with Argon2id hashes.
//
// SessionManager issues, resolves and invalidates opaque session tokens.
// The fiber storage backed implementation lives in internal/web/session.
//
// # Operations
//
//   - Register: validate input, create the principal, then log it in; the principal is removed again if no session can be established
//   - Login: verify the credentials through the store, then establish a session
//   - Logout: invalidate the session, idempotent
//   - Guard: run the guard pipeline and return Allow or a redirect to the login page
//   - Identify: the Guard checks for public pages, counted apart from Guard
//
// # Errors
//
// ErrInvalidInput, ErrDuplicateUsername and ErrInvalidCredentials are
// expected outcomes a caller reports back to the user. ErrStoreUnavailable
// and ErrSessionUnavailable wrap infrastructure faults; Guard fails closed
// on them.
//
// Example usage:
//
//	store := auth.NewLocalProvider(db, auth.PasswordParams(cfg.Password))
//	flow := auth.NewFlow(store, sessionManager)
//
//	sess, err := flow.Register(ctx, "alice", "pw1")
//	if errors.Is(err, auth.ErrDuplicateUsername) {
//	    // re-render the registration form
//	}
//
//	if flow.Guard(ctx, sess.Token).Allow {
//	    // serve the protected page
//	}
package auth
