package session

import (
	"errors"
	"fmt"

	"github.com/mandalnilabja/authdash/internal/storage"
	"github.com/mandalnilabja/authdash/internal/storage/encryption"
)

// Durable entry names.
const (
	Namespace  = "session"
	TokenKey   = "access_token"
	ProfileKey = "user"

	// ThemeKey holds the page theme. It outlives logout.
	ThemeKey = "theme"
)

var (
	// ErrCorruptToken is returned when the token entry exists but cannot be decrypted.
	ErrCorruptToken = errors.New("corrupt token entry")

	// ErrReservedKey is returned when a preference would overwrite a session entry.
	ErrReservedKey = errors.New("key is reserved for the session")
)

// Store is the persistent session store: the access token and the user
// profile kept as two independent entries in durable storage.
type Store struct {
	kv  storage.Storage
	enc encryption.Encryptor
}

// NewStore wraps kv. A nil enc stores the token as plain text.
func NewStore(kv storage.Storage, enc encryption.Encryptor) *Store {
	return &Store{kv: kv, enc: enc}
}

// Set writes the token and profile entries in one storage transaction.
func (s *Store) Set(token string, profile []byte) error {
	stored := token
	if s.enc != nil {
		sealed, err := s.enc.Encrypt(token)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		stored = sealed
	}

	return s.kv.SetValues(Namespace, map[string]string{
		TokenKey:   stored,
		ProfileKey: string(profile),
	})
}

// Get returns both entries. A missing entry comes back empty with no error;
// an undecryptable token comes back empty with ErrCorruptToken.
func (s *Store) Get() (token string, profile []byte, err error) {
	raw, found, err := s.kv.GetValue(Namespace, ProfileKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if found {
		profile = []byte(raw)
	}

	token, err = s.readToken()
	return token, profile, err
}

// Token reports the current access token. It satisfies apiclient.TokenSource.
func (s *Store) Token() (string, bool) {
	token, err := s.readToken()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the token and profile entries and nothing else.
func (s *Store) Clear() error {
	return s.kv.DeleteValues(Namespace, TokenKey, ProfileKey)
}

// Preference returns a non-session entry stored next to the session, or ""
// when unset.
func (s *Store) Preference(key string) (string, error) {
	value, _, err := s.kv.GetValue(Namespace, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// SetPreference stores a non-session entry. Clear leaves it in place.
func (s *Store) SetPreference(key, value string) error {
	if key == TokenKey || key == ProfileKey {
		return fmt.Errorf("%w: %s", ErrReservedKey, key)
	}
	return s.kv.SetValues(Namespace, map[string]string{key: value})
}

// Purge wipes every entry in the session namespace, preferences included.
func (s *Store) Purge() (int64, error) {
	return s.kv.ClearNamespace(Namespace)
}

func (s *Store) readToken() (string, error) {
	raw, found, err := s.kv.GetValue(Namespace, TokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if !found {
		return "", nil
	}
	if s.enc == nil {
		return raw, nil
	}

	token, err := s.enc.Decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptToken, err)
	}
	return token, nil
}
