package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrValidation is wrapped by every Validate failure so callers can map it
// to a client error without inspecting messages.
var ErrValidation = errors.New("validation failed")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is usable as a site code or page slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Site is a top-level tenant identified by a unique code.
type Site struct {
	ID        int64     `json:"site_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Domain    *string   `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields required to persist a site.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return fmt.Errorf("site code is required: %w", ErrValidation)
	}
	if !slugPattern.MatchString(s.Code) {
		return fmt.Errorf("site code %q must be lowercase letters, digits and dashes: %w", s.Code, ErrValidation)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site name is required: %w", ErrValidation)
	}
	return nil
}

// PageGroup is a named subdivision of a site's pages. Each group renders as
// its own menu tree.
type PageGroup struct {
	ID          int64     `json:"group_id"`
	SiteID      int64     `json:"site_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g *PageGroup) Validate() error {
	if g.SiteID <= 0 {
		return fmt.Errorf("group site is required: %w", ErrValidation)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("group name is required: %w", ErrValidation)
	}
	return nil
}
