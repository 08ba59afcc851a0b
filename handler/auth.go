package handler

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
)

type AuthHandler struct {
	*Base
}

func NewAuthHandler(b *Base) *AuthHandler {
	return &AuthHandler{Base: b}
}

// LoginForm is both the bound form and the template data.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type RegisterForm struct {
	FullName        string `form:"full_name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginPage shows the sign-in form. Signed-in visitors go straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.GetSession(c) != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", h.page(c, "Sign in", "", LoginForm{Next: c.Query("next")}))
}

// Login signs in against the backend and stores the token pair in the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginError(c, form, "Invalid request")
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		h.loginError(c, form, "Please enter your email and password")
		return
	}

	api := h.client(c)
	resp := api.Login(c.Request.Context(), form.Email, form.Password)
	if !resp.Success || resp.Data.Access == "" {
		logger.Info(c.Request.Context(), "login rejected", "email", form.Email, "status", resp.Status)
		msg := resp.ErrorOr("Invalid email or password")
		if resp.Status == http.StatusUnauthorized {
			msg = "Invalid email or password"
		}
		form.Password = ""
		h.loginError(c, form, msg)
		return
	}

	if err := h.startSession(c, resp.Data, form.Email); err != nil {
		h.loginError(c, form, "Failed to start session")
		return
	}
	logger.Info(c.Request.Context(), "user signed in", "email", form.Email)
	c.Redirect(http.StatusSeeOther, safeNext(form.Next))
}

func (h *AuthHandler) loginError(c *gin.Context, form LoginForm, msg string) {
	form.Password = ""
	p := h.page(c, "Sign in", "", form)
	p.Error = msg
	h.render(c, http.StatusUnprocessableEntity, "login.html", p)
}

// RegisterPage shows the sign-up form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.GetSession(c) != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "register.html", h.page(c, "Create account", "", RegisterForm{}))
}

// Register validates the form locally before creating the account.
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.registerError(c, form, "Invalid request")
		return
	}
	if msg := ValidateRegistration(form); msg != "" {
		h.registerError(c, form, msg)
		return
	}

	api := h.client(c)
	resp := api.Register(c.Request.Context(), strings.TrimSpace(form.Email), form.Password, strings.TrimSpace(form.FullName))
	if !resp.Success {
		h.registerError(c, form, registrationMessage(resp.Error))
		return
	}

	logger.Info(c.Request.Context(), "account created", "email", form.Email)
	if resp.Data.Access == "" {
		// The backend wants the address verified before issuing tokens.
		h.redirect(c, "/login", "Account created. Verify your email, then sign in.")
		return
	}
	if err := h.startSession(c, resp.Data, form.Email); err != nil {
		h.registerError(c, form, "Failed to start session")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) registerError(c *gin.Context, form RegisterForm, msg string) {
	form.Password = ""
	form.ConfirmPassword = ""
	p := h.page(c, "Create account", "", form)
	p.Error = msg
	h.render(c, http.StatusUnprocessableEntity, "register.html", p)
}

// Logout tells the backend, then drops the cookie whatever the backend says.
func (h *AuthHandler) Logout(c *gin.Context) {
	if middleware.GetSession(c) != nil {
		api := h.client(c)
		if resp := api.Logout(c.Request.Context()); !resp.Success {
			logger.Debug(c.Request.Context(), "backend logout failed", "status", resp.Status, "error", resp.Error)
		}
	}
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) startSession(c *gin.Context, auth *model.AuthResponse, email string) error {
	s := &middleware.Session{
		Access:  auth.Access,
		Refresh: auth.Refresh,
		Email:   email,
	}
	if auth.User != nil {
		if auth.User.Email != "" {
			s.Email = auth.User.Email
		}
		s.Name = auth.User.DisplayName()
	}
	if s.Email == "" {
		if info, ok := service.InspectToken(auth.Access); ok {
			s.Email = info.Subject
		}
	}
	if err := h.sessions.Save(c, s); err != nil {
		logger.Error(c.Request.Context(), "failed to save session", "error", err)
		return err
	}
	return nil
}

// ValidateRegistration returns the first problem with form, or "".
func ValidateRegistration(form RegisterForm) string {
	switch {
	case form.FullName == "" || form.Email == "" || form.Password == "" || form.ConfirmPassword == "":
		return "Please fill in all fields"
	case len([]rune(strings.TrimSpace(form.FullName))) < 2:
		return "Please enter your full name"
	case !emailPattern.MatchString(strings.TrimSpace(form.Email)):
		return "Please enter a valid email address"
	case len(form.Password) < 8:
		return "Password must be at least 8 characters long"
	case form.Password != form.ConfirmPassword:
		return "Passwords do not match"
	case PasswordStrength(form.Password) < 2:
		return "Password is too weak. Please use uppercase, lowercase, and numbers."
	}
	return ""
}

// PasswordStrength scores 0-4: at least 8 characters, ASCII upper and lower
// case, a digit, a symbol.
func PasswordStrength(password string) int {
	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}
	if lowerPattern.MatchString(password) && upperPattern.MatchString(password) {
		score++
	}
	if digitPattern.MatchString(password) {
		score++
	}
	if specialPattern.MatchString(password) {
		score++
	}
	return score
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score int) string {
	switch score {
	case 1:
		return "Weak"
	case 2:
		return "Fair"
	case 3:
		return "Good"
	case 4:
		return "Strong"
	default:
		return ""
	}
}

func registrationMessage(backend string) string {
	lower := strings.ToLower(backend)
	switch {
	case strings.Contains(lower, "already") || strings.Contains(lower, "exists"):
		return "Email is already registered. Please log in instead."
	case strings.Contains(lower, "invalid"):
		return "Invalid email or password format"
	case backend == "":
		return "Registration failed. Please try again."
	default:
		return backend
	}
}

// safeNext only follows local paths so ?next= cannot bounce to another site.
// Browsers drop tabs and newlines from URLs, so control bytes are refused
// before the prefix checks.
func safeNext(next string) string {
	const fallback = "/dashboard"
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	for i := 0; i < len(next); i++ {
		if next[i] < 0x20 || next[i] == 0x7f {
			return fallback
		}
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return next
}
