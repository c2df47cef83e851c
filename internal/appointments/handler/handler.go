package handler

import (
	"net/http"

	"funnel_backend/internal/appointments/service"
	"funnel_backend/internal/appointments/transport"
	leadhandler "funnel_backend/internal/leads/handler"
	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the booking calendar
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new appointments handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the calendar routes. write throttles booking.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/slots", h.GetAvailableSlots)
	rg.POST("/appointment", write, h.Book)
}

// GetAvailableSlots handles GET /api/calendar/slots
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	day, err := service.ParseDate(c.Query("date"), h.svc.Location())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, h.svc.Slots(c.Request.Context(), day))
}

// Book handles POST /api/calendar/appointment
func (h *Handler) Book(c *gin.Context) {
	var req transport.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.Book(c.Request.Context(), req, leadhandler.ClientID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
