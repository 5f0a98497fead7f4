package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/menu"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/alexanderramin/pages/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"site not found", fmt.Errorf("site %q: %w", "x", menu.ErrSiteNotFound), http.StatusNotFound},
		{"row not found", fmt.Errorf("page 3: %w", repository.ErrNotFound), http.StatusNotFound},
		{"conflict", repository.ErrConflict, http.StatusConflict},
		{"validation", fmt.Errorf("slug: %w", domain.ErrValidation), http.StatusBadRequest},
		{"invalid parent", service.ErrInvalidParent, http.StatusBadRequest},
		{"store failure", errors.New("disk I/O error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
