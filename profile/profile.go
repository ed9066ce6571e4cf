// Package profile caches the signed-in user's profile and serves read-only
// lookups of other users.
package profile

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/types"
)

// DefaultCacheTTL is how long other users' profiles are cached
const DefaultCacheTTL = 5 * time.Minute

// Client is the subset of the gateway the profile container uses
type Client interface {
	CurrentUser(ctx context.Context) (types.UserProfile, error)
	UpdateProfile(ctx context.Context, payload types.UpdateProfileRequest) (types.UserProfile, error)
	UpdateAvatar(ctx context.Context, file *client.Attachment) (types.AvatarResponse, error)
	GetUser(ctx context.Context, userID int64) (types.UserProfile, error)
	FriendshipStatus(ctx context.Context, userID int64) (types.FriendshipStatusResponse, error)
}

// Profile owns the cached current user
type Profile struct {
	mu      sync.RWMutex
	cli     Client
	current *types.UserProfile
	loading bool

	// generation is bumped by ClearUser; results of requests started
	// before a clear are dropped
	generation uint64

	users *cache.Cache
}

// New ...
func New(cli Client, ttl time.Duration) *Profile {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Profile{
		cli:   cli,
		users: cache.New(ttl, 2*ttl),
	}
}

// CurrentUser returns a copy of the cached profile, or nil
func (p *Profile) CurrentUser() *types.UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return nil
	}
	user := *p.current
	return &user
}

// IsLoading ...
func (p *Profile) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *Profile) setLoading(loading bool) {
	p.mu.Lock()
	p.loading = loading
	p.mu.Unlock()
}

// FetchCurrentUser loads the current user unless one is already cached.
// A failed fetch leaves nothing cached; it does not end the session.
func (p *Profile) FetchCurrentUser(ctx context.Context) error {
	p.mu.RLock()
	cached := p.current != nil
	generation := p.generation
	p.mu.RUnlock()
	if cached {
		return nil
	}

	user, err := p.cli.CurrentUser(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		log.WithError(err).Error("error fetching current user")
		p.current = nil
		return err
	}

	if p.generation != generation {
		log.Debug("user cleared during fetch, discarding result")
		return nil
	}

	p.current = &user
	return nil
}

// ClearUser ...
func (p *Profile) ClearUser() {
	p.mu.Lock()
	p.current = nil
	p.generation++
	p.mu.Unlock()
}

func (p *Profile) currentGeneration() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.generation
}

// UpdateUserProfile replaces the editable fields and caches the server's
// representation of the result
func (p *Profile) UpdateUserProfile(ctx context.Context, payload types.UpdateProfileRequest) error {
	p.setLoading(true)
	defer p.setLoading(false)

	generation := p.currentGeneration()

	user, err := p.cli.UpdateProfile(ctx, payload)
	if err != nil {
		log.WithError(err).Error("error updating profile")
		return err
	}

	p.mu.Lock()
	if p.generation == generation {
		p.current = &user
	}
	p.mu.Unlock()

	return nil
}

// UpdateUserAvatar uploads a new avatar and patches the cached avatar URL
func (p *Profile) UpdateUserAvatar(ctx context.Context, file *client.Attachment) error {
	p.setLoading(true)
	defer p.setLoading(false)

	res, err := p.cli.UpdateAvatar(ctx, file)
	if err != nil {
		log.WithError(err).Error("error updating avatar")
		return err
	}

	p.mu.Lock()
	if p.current != nil {
		p.current.AvatarURL = res.AvatarURL
	}
	p.mu.Unlock()

	return nil
}

// User looks up another user's public profile
func (p *Profile) User(ctx context.Context, userID int64) (types.UserProfile, error) {
	key := strconv.FormatInt(userID, 10)
	if v, found := p.users.Get(key); found {
		return v.(types.UserProfile), nil
	}

	user, err := p.cli.GetUser(ctx, userID)
	if err != nil {
		return types.UserProfile{}, err
	}

	p.users.Set(key, user, cache.DefaultExpiration)
	return user, nil
}

// FriendshipStatus returns the viewer's relationship with userID
func (p *Profile) FriendshipStatus(ctx context.Context, userID int64) (types.FriendshipStatus, error) {
	res, err := p.cli.FriendshipStatus(ctx, userID)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}

// Forget drops a cached profile, e.g. after the relationship changed
func (p *Profile) Forget(userID int64) {
	p.users.Delete(strconv.FormatInt(userID, 10))
}
