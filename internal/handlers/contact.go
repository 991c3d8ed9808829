package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/portfolio/internal/models"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
)

const maxContactBodyBytes = 16 << 10

// ContactServiceInterface defines the interface for contact form delivery
type ContactServiceInterface interface {
	Submit(ctx context.Context, req models.ContactRequest) error
}

// ContactHandler handles the public contact form
type ContactHandler struct {
	service ContactServiceInterface
	logger  *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service ContactServiceInterface, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{
		service: service,
		logger:  logger,
	}
}

// Submit handles a contact form submission
// @Summary Send a contact message
// @Accept json
// @Param request body models.ContactRequest true "Contact request"
// @Produce json
// @Success 202 {object} models.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.Submit(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, models.ErrMailDisabled):
			pkghttp.WriteServiceUnavailable(w, "The contact form is not available right now")
		case errors.Is(err, models.ErrUpstreamUnavailable):
			pkghttp.WriteServiceUnavailable(w, "Message could not be delivered. Please try again later.")
		default:
			h.logger.ErrorContext(r.Context(), "contact submission failed", slog.Any("error", err))
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusAccepted, models.ContactResponse{
		Message: "Thanks! Your message has been sent.",
	})
}
