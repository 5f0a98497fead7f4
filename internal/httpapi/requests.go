package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type createSiteRequest struct {
	Code   string  `json:"code" validate:"required,max=64"`
	Name   string  `json:"name" validate:"required,max=200"`
	Domain *string `json:"domain" validate:"omitempty,max=255"`
}

type updateSiteRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Domain *string `json:"domain" validate:"omitempty,max=255"`
}

type createGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

type updateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// createPageRequest accepts parent_id 0 as "no parent".
type createPageRequest struct {
	GroupID     *int64  `json:"group_id" validate:"omitempty,gt=0"`
	ParentID    *int64  `json:"parent_id" validate:"omitempty,gte=0"`
	Title       string  `json:"title" validate:"required,max=300"`
	Slug        string  `json:"slug" validate:"required,max=200"`
	Content     *string `json:"content"`
	MenuOrder   *int    `json:"menu_order" validate:"omitempty,gte=0"`
	IsPublished *bool   `json:"is_published"`
}

type updatePageRequest struct {
	GroupID     *int64  `json:"group_id" validate:"omitempty,gt=0"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content"`
	MenuOrder   *int    `json:"menu_order" validate:"omitempty,gte=0"`
	IsPublished *bool   `json:"is_published"`
}

const maxBodyBytes = 1 << 20

// decode reads a JSON body into dst and runs its validate tags. It writes the
// 400 response itself and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// jsonFieldName makes validator report fields by their JSON names.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}
