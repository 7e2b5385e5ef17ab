package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// credentials is the validated form of a register request.
// The username limit matches the users.username column.
type credentials struct {
	Username string `validate:"required,max=100"`
	Password string `validate:"required,max=1024"`
}

// Flow orchestrates registration, login, logout and the route guard.
// It keeps no state between calls.
type Flow struct {
	store    CredentialStore
	sessions SessionManager
	validate *validator.Validate
	guards   Pipeline
}

// NewFlow creates a Flow. The guard pipeline always starts with RequireSession
// and RequireLivePrincipal, extra guards run after them in order.
func NewFlow(store CredentialStore, sessions SessionManager, extra ...GuardFunc) *Flow {
	if store == nil || sessions == nil {
		panic("auth: credential store and session manager are required")
	}

	guards := Pipeline{RequireSession, RequireLivePrincipal(store)}
	guards = append(guards, extra...)

	return &Flow{
		store:    store,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		guards:   guards,
	}
}

// Register creates a principal and logs it in.
// On any error no principal is left behind.
func (f *Flow) Register(ctx context.Context, username, password string) (*Session, error) {
	if err := f.validate.StructCtx(ctx, credentials{Username: username, Password: password}); err != nil {
		countEvent(opRegister, outcomeInvalidInput)

		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	principal, err := f.store.Create(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			countEvent(opRegister, outcomeDuplicateUsername)
			log.Debug().Str("username", username).Msg("registration rejected, username taken")

			return nil, ErrDuplicateUsername
		}

		countEvent(opRegister, outcomeError)

		return nil, err
	}

	sess, err := f.sessions.Establish(ctx, *principal)
	if err != nil {
		countEvent(opRegister, outcomeError)

		// a registration without a session leaves no user behind
		if errDel := f.store.Delete(ctx, principal.ID); errDel != nil {
			log.Error().Err(errDel).Uint64("user_id", principal.ID).Msg("failed to remove user after session error")

			return nil, errors.Join(err, errDel)
		}

		return nil, err
	}

	countEvent(opRegister, outcomeOK)
	log.Info().Uint64("user_id", principal.ID).Str("username", principal.Username).Msg("user registered")

	return sess, nil
}

// Login verifies the credentials through the store and establishes a new session.
// Unknown usernames and wrong passwords are both ErrInvalidCredentials.
func (f *Flow) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		countEvent(opLogin, outcomeInvalidCredentials)

		return nil, ErrInvalidCredentials
	}

	principal, err := f.store.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			countEvent(opLogin, outcomeInvalidCredentials)

			return nil, ErrInvalidCredentials
		}

		countEvent(opLogin, outcomeError)

		return nil, err
	}

	sess, err := f.sessions.Establish(ctx, *principal)
	if err != nil {
		countEvent(opLogin, outcomeError)

		return nil, err
	}

	countEvent(opLogin, outcomeOK)
	log.Info().Uint64("user_id", principal.ID).Str("username", principal.Username).Msg("user logged in")

	return sess, nil
}

// Logout invalidates the session behind token. An empty or unknown token is not an error.
func (f *Flow) Logout(ctx context.Context, token string) error {
	if token == "" {
		countEvent(opLogout, outcomeOK)

		return nil
	}

	if err := f.sessions.Invalidate(ctx, token); err != nil {
		countEvent(opLogout, outcomeError)

		return err
	}

	countEvent(opLogout, outcomeOK)

	return nil
}

// Guard decides whether the request carrying token may see a protected page.
func (f *Flow) Guard(ctx context.Context, token string) Decision {
	d, _ := f.Authorize(ctx, token)

	return d
}

// Authorize is Guard that also returns the resolved session when access is allowed.
// Session lookup failures deny.
func (f *Flow) Authorize(ctx context.Context, token string) (Decision, *Session) {
	return f.authorize(ctx, token, opGuard)
}

// Identify returns the session of a logged in user on a public page, or nil.
// It runs the same checks as Guard but is counted apart from it.
func (f *Flow) Identify(ctx context.Context, token string) *Session {
	if token == "" {
		return nil
	}

	_, sess := f.authorize(ctx, token, opIdentify)

	return sess
}

func (f *Flow) authorize(ctx context.Context, token, op string) (Decision, *Session) {
	var sess *Session

	if token != "" {
		var err error

		sess, err = f.sessions.Resolve(ctx, token)
		if err != nil {
			log.Error().Err(err).Str("operation", op).Msg("failed to resolve session")
			countEvent(op, outcomeDeny)

			return DenyRedirect(LoginPath), nil
		}
	}

	d := f.guards.Evaluate(ctx, sess)
	if !d.Allow {
		countEvent(op, outcomeDeny)

		return d, nil
	}

	countEvent(op, outcomeAllow)

	return d, sess
}

// describeValidation names the failing fields without echoing their values.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	out := ""

	for i, fe := range verrs {
		if i > 0 {
			out += ", "
		}

		out += fe.Field() + " " + fe.Tag()
	}

	return out
}
