package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/suhaib93102/CLM-Frontend/config"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
)

const sessionKey = "session"

// Session is what the browser keeps between requests: the backend token
// pair plus enough identity to render the page chrome.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// DisplayName returns the name, falling back to the email.
func (s *Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Claims is the signed cookie payload.
type Claims struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies session cookies.
type Sessions struct {
	cfg *config.SessionConfig
}

func NewSessions(cfg *config.SessionConfig) *Sessions {
	return &Sessions{cfg: cfg}
}

// Issue signs s into a cookie value.
func (m *Sessions) Issue(s *Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.cfg.TTL())

	claims := Claims{
		Access:  s.Access,
		Refresh: s.Refresh,
		Email:   s.Email,
		Name:    s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies a cookie value.
func (m *Sessions) Parse(value string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Access == "" {
		return nil, errors.New("invalid session")
	}
	return &Session{
		Access:  claims.Access,
		Refresh: claims.Refresh,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// Save writes s to the response cookie and the current context.
func (m *Sessions) Save(c *gin.Context, s *Session) error {
	value, _, err := m.Issue(s)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, value, int(m.cfg.TTL().Seconds()), "/", "", m.cfg.Secure, true)
	c.Set(sessionKey, s)
	return nil
}

// Clear expires the cookie and drops the session from the context.
func (m *Sessions) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)
	c.Set(sessionKey, (*Session)(nil))
}

// LoadSession reads the cookie, if any, into the context. A cookie that
// fails verification is cleared.
func LoadSession(m *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(m.cfg.CookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}

		s, err := m.Parse(value)
		if err != nil {
			logger.Debug(c.Request.Context(), "discarding session cookie", "error", err)
			m.Clear(c)
			c.Next()
			return
		}

		c.Set(sessionKey, s)
		ctx := logger.With(c.Request.Context(), logger.UserKey, s.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireSession redirects anonymous visitors to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.Redirect(http.StatusSeeOther, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginURL builds the login link that returns to next afterwards.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// GetSession returns the signed-in session or nil.
func GetSession(c *gin.Context) *Session {
	if v, exists := c.Get(sessionKey); exists {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}
