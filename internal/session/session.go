// Package session persists client session state (bearer token and
// logged-in user id) in a small on-device key-value store.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("session")
	tokenKey   = []byte("auth_token")
	userIDKey  = []byte("user_id")
)

// Store persists session state in a bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key []byte) (string, error) {
	var val string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(key); v != nil {
			val = string(v)
		}
		return nil
	})
	return val, err
}

func (s *Store) put(key []byte, val string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, []byte(val))
	})
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() (string, error) {
	return s.get(tokenKey)
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.put(tokenKey, token)
}

// UserID returns the stored logged-in user id, or "" when logged out.
func (s *Store) UserID() (string, error) {
	return s.get(userIDKey)
}

// SetUserID persists the logged-in user id.
func (s *Store) SetUserID(id string) error {
	return s.put(userIDKey, id)
}

// Clear removes the persisted session state.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Delete(tokenKey); err != nil {
			return err
		}
		return b.Delete(userIDKey)
	})
}

// TokenValid reports whether a token is stored and not past its JWT expiry.
// The client holds no signing key, so claims are inspected without
// signature verification; a malformed token simply reads as invalid.
func (s *Store) TokenValid() bool {
	token, err := s.Token()
	if err != nil || token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		// No expiry claim: treat the token as a long-lived session.
		return true
	}
	return exp.After(time.Now())
}
