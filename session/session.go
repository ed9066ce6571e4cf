// Package session owns the access token and drives the sign-in flow:
// login, one-time passcode verification, token persistence, loading the
// current user and navigating to the right view.
package session

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/router"
	"github.com/jointwt/sonet/storage"
	"github.com/jointwt/sonet/types"
)

// Messages recorded when the backend gives no reason of its own
const (
	LoginFailedMessage    = "An error occurred while logging in."
	OTPFailedMessage      = "The OTP is invalid or has expired."
	RegisterFailedMessage = "An error occurred while registering."
	ForgotFailedMessage   = "An error occurred while requesting a password reset."
	ResetFailedMessage    = "An error occurred while resetting the password."
	PersistFailedMessage  = "Unable to save the session."
)

// Authenticator is the subset of the gateway the session uses
type Authenticator interface {
	Login(ctx context.Context, email, password string) (types.LoginResponse, error)
	VerifyOTP(ctx context.Context, email, otp string) (types.AuthResponse, error)
	Register(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) (types.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// UserCache is the current-user container the session delegates to
type UserCache interface {
	FetchCurrentUser(ctx context.Context) error
	ClearUser()
}

// Navigator moves the application to a named route
type Navigator interface {
	Push(name string) error
}

// Session is the authentication state of one client.
//
// The loading flag tells the UI a request is in flight; it does not stop
// overlapping calls.
type Session struct {
	mu sync.RWMutex

	auth  Authenticator
	store storage.Store
	users UserCache
	nav   Navigator

	token   string
	loading bool
	err     string

	// generation is bumped by every teardown; a verification that started
	// before one must not resurrect the token
	generation uint64
}

// New creates a session hydrated with the token persisted in store
func New(auth Authenticator, store storage.Store, users UserCache, nav Navigator) *Session {
	return &Session{
		auth:  auth,
		store: store,
		users: users,
		nav:   nav,
		token: storage.Token(store),
	}
}

// SetNavigator replaces the navigator, for wiring a router that itself
// depends on the session
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

// Token implements client.TokenSource
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated ...
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsLoading ...
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last human readable error, or ""
func (s *Session) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ClearError ...
func (s *Session) ClearError() {
	s.setError("")
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// begin marks a request in flight and clears the previous error; the
// returned func ends it
func (s *Session) begin() func() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

func (s *Session) push(name string) {
	s.mu.RLock()
	nav := s.nav
	s.mu.RUnlock()

	if nav == nil {
		return
	}
	if err := nav.Push(name); err != nil {
		log.WithError(err).Warnf("error navigating to %s", name)
	}
}

// DisplayError returns the backend's message for err, or fallback
func DisplayError(err error, fallback string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return fallback
}

// Login checks the credentials and returns the one-time passcode to verify,
// or "" after recording an error. It does not authenticate the session.
func (s *Session) Login(ctx context.Context, email, password string) string {
	defer s.begin()()

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.WithError(err).Warn("login failed")
		s.setError(DisplayError(err, LoginFailedMessage))
		return ""
	}

	return res.OTP
}

// VerifyOTP exchanges the passcode for an access token, persists it, loads
// the current user and navigates home
func (s *Session) VerifyOTP(ctx context.Context, email, otp string) {
	defer s.begin()()

	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	res, err := s.auth.VerifyOTP(ctx, email, otp)
	if err != nil {
		log.WithError(err).Warn("otp verification failed")
		s.setError(DisplayError(err, OTPFailedMessage))
		return
	}

	if ok, err := s.persist(generation, res.AccessToken); err != nil {
		log.WithError(err).Error("error persisting token")
		s.setError(PersistFailedMessage)
		return
	} else if !ok {
		log.Debug("session ended during verification, discarding token")
		return
	}

	log.Debug("session authenticated")

	// failures are logged by the user cache and leave the session intact
	_ = s.users.FetchCurrentUser(ctx)

	s.push(router.Home)
}

// Logout forgets the token and the current user and navigates to login
func (s *Session) Logout() {
	s.teardown()
	log.Debug("logged out")
	s.push(router.Login)
}

// Expire ends a session the backend no longer accepts. It is the reaction
// to an unauthorized response and behaves like Logout.
func (s *Session) Expire() {
	s.teardown()
	log.Warn("session expired, please login again")
	s.push(router.Login)
}

// persist stores token unless a teardown happened since generation was read
func (s *Session) persist(generation uint64, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return false, nil
	}
	if err := s.store.SetToken(token); err != nil {
		return false, err
	}
	s.token = token
	return true, nil
}

func (s *Session) teardown() {
	s.mu.Lock()
	s.token = ""
	s.generation++
	s.mu.Unlock()

	if err := s.store.DelToken(); err != nil {
		log.WithError(err).Error("error removing persisted token")
	}

	s.users.ClearUser()
}

// Register creates an account and navigates to login
func (s *Session) Register(ctx context.Context, email, password string) {
	defer s.begin()()

	if _, err := s.auth.Register(ctx, email, password); err != nil {
		log.WithError(err).Warn("registration failed")
		s.setError(DisplayError(err, RegisterFailedMessage))
		return
	}

	s.push(router.Login)
}

// ForgotPassword requests a reset token and returns it, or "" after
// recording an error
func (s *Session) ForgotPassword(ctx context.Context, email string) string {
	defer s.begin()()

	res, err := s.auth.ForgotPassword(ctx, email)
	if err != nil {
		log.WithError(err).Warn("password reset request failed")
		s.setError(DisplayError(err, ForgotFailedMessage))
		return ""
	}

	return res.ResetToken
}

// ResetPassword sets a new password and navigates to login
func (s *Session) ResetPassword(ctx context.Context, token, newPassword string) {
	defer s.begin()()

	if _, err := s.auth.ResetPassword(ctx, token, newPassword); err != nil {
		log.WithError(err).Warn("password reset failed")
		s.setError(DisplayError(err, ResetFailedMessage))
		return
	}

	s.push(router.Login)
}
