package handler

import (
	"errors"
	"io"
	"net/http"

	"funnel_backend/internal/analytics"
	"funnel_backend/internal/leads/service"
	"funnel_backend/internal/leads/transport"
	"funnel_backend/internal/qualification"
	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead intake.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes registers the intake routes. write throttles the
// endpoint that records data.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.POST("", write, h.Register)
	rg.POST("/qualify", h.Qualify)
	rg.GET("/rubric", h.Rubric)
}

// RegisterAdminRoutes registers the ledger views.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/export", h.Export)
	rg.GET("/export-url", h.ExportURL)
}

// Register handles POST /api/leads
func (h *Handler) Register(c *gin.Context) {
	var req transport.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	httpkit.OK(c, h.svc.Register(c.Request.Context(), req, ClientID(c)))
}

// Qualify handles POST /api/leads/qualify
func (h *Handler) Qualify(c *gin.Context) {
	var answers qualification.AnswerSet
	// an empty body is an empty answer set, which scores zero
	if err := c.ShouldBindJSON(&answers); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	httpkit.OK(c, h.svc.Qualify(answers))
}

// Rubric handles GET /api/leads/rubric
func (h *Handler) Rubric(c *gin.Context) {
	httpkit.OK(c, h.svc.Rubric())
}

// List handles GET /api/admin/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Export handles GET /api/admin/leads/export
func (h *Handler) Export(c *gin.Context) {
	path, err := h.svc.WorkbookPath()
	if httpkit.HandleError(c, err) {
		return
	}
	c.FileAttachment(path, "leads.xlsx")
}

// ExportURL handles GET /api/admin/leads/export-url
func (h *Handler) ExportURL(c *gin.Context) {
	result, err := h.svc.ExportURL(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ClientID returns the analytics client id for the request.
func ClientID(c *gin.Context) string {
	cookie, _ := c.Cookie(analytics.GACookie)
	return analytics.ClientIDFromCookie(cookie)
}
