package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/limejump/corona-analytics/internal/asset"
	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// MPANHandler serves metering point endpoints
type MPANHandler struct {
	assets *asset.Service
	logger *logger.Logger
}

// NewMPANHandler creates a new MPAN handler
func NewMPANHandler(assets *asset.Service, log *logger.Logger) *MPANHandler {
	return &MPANHandler{
		assets: assets,
		logger: log,
	}
}

// ListMPANs returns the PPA metering points matching the query
// GET /api/mpans?start=2017-01-01&end=2017-12-31&quote_type=flex&meter_type=export
func (h *MPANHandler) ListMPANs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := parseCriteria(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if meterType := q.Get("meter_type"); meterType != "" {
		assets, err := h.assets.MPANsByMeterType(r.Context(), criteria, meterType)
		if err != nil {
			h.logger.WithError(err).Error("Failed to resolve MPANs by meter type")
			respondError(w, http.StatusBadGateway, "Failed to resolve MPANs")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"mpans": assets,
			"count": len(assets),
		})
		return
	}

	mpans, err := h.assets.ListMPANs(r.Context(), criteria, q.Get("quote_type"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list MPANs")
		respondError(w, http.StatusBadGateway, "Failed to list MPANs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mpans": mpans,
		"count": len(mpans),
	})
}

// ListQuoteIDs returns the quote ids matching the query
// GET /api/quotes?start=2017-01-01&contracted=false
func (h *MPANHandler) ListQuoteIDs(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := h.assets.ListQuoteIDs(r.Context(), criteria)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list quote ids")
		respondError(w, http.StatusBadGateway, "Failed to list quotes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"quote_ids": ids,
		"count":     len(ids),
	})
}

// GetSummary resolves one metering point
// GET /api/mpans/{mpan}?start=2017-11-01&end=2017-11-30
func (h *MPANHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	mpan := mux.Vars(r)["mpan"]

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := h.assets.Summary(r.Context(), mpan, asset.Options{
		Start:           criteria.Start,
		End:             criteria.End,
		Contracted:      criteria.Contracted,
		RemoveCancelled: criteria.RemoveCancelled,
	})
	if err != nil {
		h.fail(w, err, mpan)
		return
	}

	respondJSON(w, http.StatusOK, sum.View())
}

// GetAttribution clamps the contracts of a metering point to a reporting period
// GET /api/mpans/{mpan}/attribution?from=2017-11-01&to=2017-11-30
func (h *MPANHandler) GetAttribution(w http.ResponseWriter, r *http.Request) {
	mpan := mux.Vars(r)["mpan"]
	q := r.URL.Query()

	if q.Get("from") == "" || q.Get("to") == "" {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	from, err := parseDateParam(q, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(q, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := asset.DefaultOptions()
	opts.Start, opts.End = from, to

	sum, err := h.assets.Summary(r.Context(), mpan, opts)
	if err != nil {
		h.fail(w, err, mpan)
		return
	}

	periods, err := sum.Attribution(from, to)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mpan":    sum.FullMPAN,
		"from":    contract.FormatDate(from),
		"to":      contract.FormatDate(to),
		"periods": periods,
	})
}

// fail maps caller mistakes to 400. Anything else, including a malformed
// date inside a registry record, is an upstream fault.
func (h *MPANHandler) fail(w http.ResponseWriter, err error, mpan string) {
	if errors.Is(err, contract.ErrInvertedRange) || errors.Is(err, asset.ErrEmptyMPAN) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.WithError(err).WithField("mpan", mpan).Error("Failed to resolve MPAN")
	respondError(w, http.StatusBadGateway, "Failed to resolve MPAN")
}
