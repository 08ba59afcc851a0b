package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type SystemHandler struct {
	*Base
}

func NewSystemHandler(b *Base) *SystemHandler {
	return &SystemHandler{Base: b}
}

// Health reports this server and the backend. The server answers 200 even
// when the backend is down so load balancers keep routing to it.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	backend := gin.H{"status": "unreachable"}
	if resp := h.api.Health(ctx); resp.Success {
		health := resp.Value()
		backend = gin.H{"status": health.Status, "version": health.Version}
		if health.Status == "" {
			backend["status"] = "ok"
		}
	} else {
		backend["error"] = resp.Error
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   Version,
		"timestamp": h.now().Format(time.RFC3339),
		"backend":   backend,
	})
}

type SettingsData struct {
	Profile        model.User
	ProfileError   string
	SessionExpires time.Time
	Timezone       string
	Version        string
}

// Settings shows the profile and session details.
func (h *SystemHandler) Settings(c *gin.Context) {
	api := h.client(c)
	resp := api.CurrentUser(c.Request.Context())
	if resp.Unauthorized() {
		h.expired(c)
		return
	}

	data := SettingsData{
		Profile:  resp.Value(),
		Timezone: h.loc.String(),
		Version:  Version,
	}
	if !resp.Success {
		data.ProfileError = resp.Error
		if s := middleware.GetSession(c); s != nil {
			data.Profile = model.User{Email: s.Email, FullName: s.Name}
		}
	}
	if info, ok := service.InspectToken(h.tokens(c).AccessToken()); ok {
		data.SessionExpires = info.ExpiresAt
	}

	h.render(c, http.StatusOK, "settings.html", h.page(c, "Settings", "settings", data))
}
