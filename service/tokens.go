package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the access/refresh pair for one user.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	// SetTokens stores a new access token. An empty refresh keeps the current one.
	SetTokens(access, refresh string)
	ClearTokens()
}

// MemoryTokens is a TokenStore that also remembers whether it was modified,
// so callers can persist the pair only after a refresh or logout.
type MemoryTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	changed bool
}

func NewMemoryTokens(access, refresh string) *MemoryTokens {
	return &MemoryTokens{access: access, refresh: refresh}
}

func (m *MemoryTokens) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *MemoryTokens) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *MemoryTokens) SetTokens(access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	m.changed = true
}

func (m *MemoryTokens) ClearTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.changed = true
}

// Changed reports whether SetTokens or ClearTokens was called.
func (m *MemoryTokens) Changed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changed
}

// TokenInfo is what the UI may read from a backend access token. The
// signature is not verified: the backend remains the authority.
type TokenInfo struct {
	Subject   string
	UserID    string
	ExpiresAt time.Time
}

// InspectToken decodes the claims of a backend JWT without verifying it.
func InspectToken(token string) (TokenInfo, bool) {
	if token == "" {
		return TokenInfo{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}

	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	switch v := claims["user_id"].(type) {
	case string:
		info.UserID = v
	case float64:
		info.UserID = strconv.FormatInt(int64(v), 10)
	}
	return info, true
}
