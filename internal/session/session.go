// Package session owns client-side authentication state: the durable session
// entries, the in-memory Session and the controller that keeps both in step.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mandalnilabja/authdash/internal/authapi"
)

// ErrCorruptProfile is returned when the durable profile entry cannot be decoded.
var ErrCorruptProfile = errors.New("corrupt profile entry")

// Session is the authenticated user as seen by the client.
// AccessToken never appears in the serialized profile.
type Session struct {
	UserID         string `json:"id"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
	DisplayName    string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	OrganizationID string `json:"organizationId,omitempty"`
	Role           string `json:"role,omitempty"`
	Invites        []int  `json:"invites,omitempty"`
	AccessToken    string `json:"-"`
}

// FromLogin builds a Session from a login response body.
func FromLogin(resp *authapi.LoginResponse) *Session {
	return &Session{
		UserID:         resp.ID,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
		DisplayName:    resp.Name,
		Email:          resp.Email,
		Phone:          resp.Phone,
		OrganizationID: resp.OrganizationID,
		Role:           resp.Role,
		Invites:        resp.Invites,
		AccessToken:    resp.AccessToken,
	}
}

// Profile returns the JSON profile entry for s, without the token.
func (s *Session) Profile() ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy so callers cannot mutate controller state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Invites != nil {
		c.Invites = append([]int(nil), s.Invites...)
	}
	return &c
}

// decodeProfile rebuilds a Session from a profile entry and its token.
// A profile without an id is treated as corrupt.
func decodeProfile(profile []byte, token string) (*Session, error) {
	var s Session
	if err := json.Unmarshal(profile, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProfile, err)
	}
	if s.UserID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrCorruptProfile)
	}
	s.AccessToken = token
	return &s, nil
}
