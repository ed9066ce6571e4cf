package storage

import (
	"errors"
	"fmt"
	"strings"
)

// TokenKey is the well-known key the access token is persisted under
const TokenKey = "accessToken"

var (
	ErrInvalidStore  = errors.New("error: invalid store")
	ErrTokenNotFound = errors.New("error: token not found")
)

// Store persists the session's access token across process restarts
type Store interface {
	Close() error

	GetToken() (string, error)
	SetToken(token string) error
	DelToken() error
}

// URI ...
type URI struct {
	Type string
	Path string
}

func (u *URI) String() string {
	return fmt.Sprintf("%s://%s", u.Type, u.Path)
}

// ParseURI ...
func ParseURI(uri string) (*URI, error) {
	parts := strings.Split(uri, "://")
	if len(parts) == 2 {
		return &URI{Type: strings.ToLower(parts[0]), Path: parts[1]}, nil
	}
	return nil, fmt.Errorf("invalid uri: %s", uri)
}

// NewStore opens the store described by uri, one of bitcask://<dir>,
// sqlite://<file> or memory://
func NewStore(store string) (Store, error) {
	u, err := ParseURI(store)
	if err != nil {
		return nil, fmt.Errorf("error parsing store uri: %s", err)
	}

	switch u.Type {
	case "bitcask":
		return newBitcaskStore(u.Path)
	case "sqlite":
		return newSQLiteStore(u.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, ErrInvalidStore
	}
}

// Token returns the persisted token or "" when there is none or it cannot
// be read
func Token(s Store) string {
	token, err := s.GetToken()
	if err != nil {
		return ""
	}
	return token
}
