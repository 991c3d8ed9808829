package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/portfolio/internal/external"
	"github.com/BradenHooton/portfolio/internal/models"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
)

// ExternalData is the cached feed layer. Satisfied by *external.Service.
type ExternalData interface {
	Snapshot(ctx context.Context) external.Snapshot
	Refresh(ctx context.Context) external.Snapshot
}

// PortfolioHandler serves the public portfolio API
type PortfolioHandler struct {
	catalog  CatalogReader
	external ExternalData
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(catalog CatalogReader, externalData ExternalData) *PortfolioHandler {
	return &PortfolioHandler{
		catalog:  catalog,
		external: externalData,
	}
}

// GetProfile returns the profile section
// @Summary Portfolio profile
// @Produce json
// @Success 200 {object} content.Profile
// @Router /api/profile [get]
func (h *PortfolioHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.catalog.Profile())
}

// ListSections returns the section names in export order
// @Summary Portfolio sections
// @Produce json
// @Success 200 {object} SectionsResponse
// @Router /api/sections [get]
func (h *PortfolioHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, SectionsResponse{Sections: h.catalog.Sections()})
}

// GetSection returns one section by name
// @Summary Portfolio section
// @Param name path string true "Section name"
// @Produce json
// @Failure 404 {object} ErrorResponse
// @Router /api/sections/{name} [get]
func (h *PortfolioHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.catalog.Section(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidSection) {
			pkghttp.WriteNotFound(w, "Unknown section")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, section)
}

// GetExternal returns the cached GitHub, Credly and Medium data
// @Summary External feed snapshot
// @Produce json
// @Success 200 {object} external.Snapshot
// @Router /api/external [get]
func (h *PortfolioHandler) GetExternal(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.external.Snapshot(r.Context()))
}

// RefreshExternal forces a refetch of every feed. Requires an observatory session.
// @Summary Refresh external feeds
// @Produce json
// @Success 200 {object} external.Snapshot
// @Failure 401 {object} ErrorResponse
// @Router /api/external/refresh [post]
func (h *PortfolioHandler) RefreshExternal(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.external.Refresh(r.Context()))
}
