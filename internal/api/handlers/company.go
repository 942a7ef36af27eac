package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/limejump/corona-analytics/internal/company"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// CompanyHandler serves company endpoints
type CompanyHandler struct {
	companies *company.Service
	logger    *logger.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companies *company.Service, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		companies: companies,
		logger:    log,
	}
}

// GetCompany returns a company by id
// GET /api/companies/{id}
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	h.lookup(w, r, id, "")
}

// FindCompany returns the first company with the given name
// GET /api/companies?name=Sunny%20Farm%20Ltd
func (h *CompanyHandler) FindCompany(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, 0, r.URL.Query().Get("name"))
}

func (h *CompanyHandler) lookup(w http.ResponseWriter, r *http.Request, id int64, name string) {
	info, err := h.companies.Lookup(r.Context(), id, name)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, info)
	case errors.Is(err, company.ErrNoCompanyKey):
		respondError(w, http.StatusBadRequest, "id or name is required")
	case errors.Is(err, corona.ErrNotFound):
		respondError(w, http.StatusNotFound, "company not found")
	default:
		h.logger.WithError(err).Error("Failed to look up company")
		respondError(w, http.StatusBadGateway, "Failed to look up company")
	}
}
