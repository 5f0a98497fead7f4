package httpapi

import (
	"net/http"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context(), chi.URLParam(r, "siteCode"))
	if err != nil {
		h.respondServiceError(w, r, "list-groups", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, groups)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	g := &domain.PageGroup{Name: req.Name, Description: req.Description}
	if err := h.groups.Create(r.Context(), chi.URLParam(r, "siteCode"), g); err != nil {
		h.respondServiceError(w, r, "create-group", err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, g)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "groupID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	g, err := h.groups.Get(r.Context(), chi.URLParam(r, "siteCode"), id)
	if err != nil {
		h.respondServiceError(w, r, "get-group", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, g)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "groupID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req updateGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.groups.Update(r.Context(), chi.URLParam(r, "siteCode"), id, service.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondServiceError(w, r, "update-group", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, g)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "groupID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "siteCode"), id); err != nil {
		h.respondServiceError(w, r, "delete-group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
