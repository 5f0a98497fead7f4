package httpapi

import (
	"net/http"

	"github.com/alexanderramin/pages/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.ListBySite(r.Context(), chi.URLParam(r, "siteCode"))
	if err != nil {
		h.respondServiceError(w, r, "list-pages", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, pages)
}

func (h *Handler) ListGroupPages(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	pages, err := h.pages.ListByGroup(r.Context(), chi.URLParam(r, "siteCode"), groupID)
	if err != nil {
		h.respondServiceError(w, r, "list-group-pages", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, pages)
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.createPage(w, r, req)
}

// CreateGroupPage creates a page in the group named by the path; a group_id
// in the body is ignored.
func (h *Handler) CreateGroupPage(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req createPageRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.GroupID = &groupID
	h.createPage(w, r, req)
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request, req createPageRequest) {
	page, err := h.pages.Create(r.Context(), chi.URLParam(r, "siteCode"), service.CreatePageInput{
		GroupID:     req.GroupID,
		ParentID:    req.ParentID,
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		MenuOrder:   req.MenuOrder,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.respondServiceError(w, r, "create-page", err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, page)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pageID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.pages.Get(r.Context(), chi.URLParam(r, "siteCode"), id)
	if err != nil {
		h.respondServiceError(w, r, "get-page", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, page)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pageID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req updatePageRequest
	if !h.decode(w, r, &req) {
		return
	}
	page, err := h.pages.Update(r.Context(), chi.URLParam(r, "siteCode"), id, service.UpdatePageInput{
		GroupID:     req.GroupID,
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		MenuOrder:   req.MenuOrder,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.respondServiceError(w, r, "update-page", err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, page)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pageID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.pages.Delete(r.Context(), chi.URLParam(r, "siteCode"), id); err != nil {
		h.respondServiceError(w, r, "delete-page", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
