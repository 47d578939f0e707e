package valutatrade

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 4

var (
	ErrUserExists      = errors.New("username already taken")
	ErrUnknownUser     = errors.New("unknown user")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrWeakPassword    = fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	ErrInvalidUsername = errors.New("username must not be empty")
)

// User is one registered account. The password is stored as
// sha256(salt + password) with a random per-user salt; plaintext never
// touches disk.
type User struct {
	Username     string
	Salt         string
	PasswordHash string
	RegisteredAt time.Time
}

// NewUser registers a user with a fresh salt.
func NewUser(username, password string, now time.Time) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidUsername
	}
	if len(password) < MinPasswordLen {
		return User{}, ErrWeakPassword
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return User{}, fmt.Errorf("cannot generate salt: %w", err)
	}
	u := User{
		Username:     username,
		Salt:         hex.EncodeToString(salt),
		RegisteredAt: now.UTC(),
	}
	u.PasswordHash = hashPassword(u.Salt, password)
	return u, nil
}

// Authenticate checks a password against the stored salted hash.
func (u *User) Authenticate(password string) bool {
	got := hashPassword(u.Salt, password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(u.PasswordHash)) == 1
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
