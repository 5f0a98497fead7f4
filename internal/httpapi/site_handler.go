package httpapi

import (
	"net/http"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.sites.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "list-sites", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, sites)
}

func (h *Handler) ListSiteCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.sites.ListCodes(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "list-site-codes", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, codes)
}

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req createSiteRequest
	if !h.decode(w, r, &req) {
		return
	}
	site := &domain.Site{Code: req.Code, Name: req.Name, Domain: req.Domain}
	if err := h.sites.Create(r.Context(), site); err != nil {
		h.respondServiceError(w, r, "create-site", err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, site)
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := h.sites.GetByCode(r.Context(), chi.URLParam(r, "siteCode"))
	if err != nil {
		h.respondServiceError(w, r, "get-site", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, site)
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var req updateSiteRequest
	if !h.decode(w, r, &req) {
		return
	}
	site, err := h.sites.Update(r.Context(), chi.URLParam(r, "siteCode"), service.UpdateSiteInput{
		Name:   req.Name,
		Domain: req.Domain,
	})
	if err != nil {
		h.respondServiceError(w, r, "update-site", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, site)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := h.sites.Delete(r.Context(), chi.URLParam(r, "siteCode")); err != nil {
		h.respondServiceError(w, r, "delete-site", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
