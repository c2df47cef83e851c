package googleauth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateTTL = 10 * time.Minute

// Handler serves the consent flow that authorizes the calendar and
// spreadsheet integrations.
type Handler struct {
	client *Client
	log    *logger.Logger

	mu     sync.Mutex
	states map[string]time.Time
}

// NewHandler creates a consent flow handler.
func NewHandler(client *Client, log *logger.Logger) *Handler {
	return &Handler{client: client, log: log, states: make(map[string]time.Time)}
}

// RegisterRoutes registers the consent routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/authorize", h.Authorize)
	rg.GET("/callback", h.Callback)
}

// Authorize handles GET /api/auth/authorize
func (h *Handler) Authorize(c *gin.Context) {
	if h.client == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, ErrNotConfigured.Error(), nil)
		return
	}

	state := h.issueState()
	authURL, err := h.client.AuthURL(state)
	if err != nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "could not generate authorization URL", nil)
		return
	}

	httpkit.OK(c, gin.H{"authUrl": authURL})
}

// Callback handles GET /api/auth/callback
func (h *Handler) Callback(c *gin.Context) {
	if h.client == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, ErrNotConfigured.Error(), nil)
		return
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		httpkit.Error(c, http.StatusBadRequest, "authorization code not provided", nil)
		return
	}
	if !h.consumeState(c.Query("state")) {
		httpkit.Error(c, http.StatusBadRequest, "unknown or expired state", nil)
		return
	}

	if err := h.client.Exchange(c.Request.Context(), code); err != nil {
		h.log.CollaboratorFailure("googleauth", "exchange", err)
		httpkit.Error(c, http.StatusBadGateway, "failed to handle authorization code", nil)
		return
	}

	h.log.Info("google authorization completed")
	httpkit.OK(c, gin.H{"message": "Authorization successful. You can now close this window."})
}

func (h *Handler) issueState() string {
	state := uuid.NewString()
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	for s, issued := range h.states {
		if now.Sub(issued) > stateTTL {
			delete(h.states, s)
		}
	}
	h.states[state] = now
	return state
}

func (h *Handler) consumeState(state string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	issued, ok := h.states[state]
	if !ok {
		return false
	}
	delete(h.states, state)
	return time.Since(issued) <= stateTTL
}
