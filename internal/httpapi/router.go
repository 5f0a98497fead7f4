// Package httpapi exposes sites, groups, pages and assembled menus over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/alexanderramin/pages/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the router serves.
type Deps struct {
	Sites          service.SiteService
	Groups         service.GroupService
	Pages          service.PageService
	Menu           service.MenuService
	DB             Pinger
	Logger         *zap.Logger
	AllowedOrigins []string
}

// Handler holds the HTTP handlers. Build it through NewRouter.
type Handler struct {
	sites    service.SiteService
	groups   service.GroupService
	pages    service.PageService
	menu     service.MenuService
	db       Pinger
	logger   *zap.Logger
	validate *validator.Validate
}

// NewRouter wires every route and middleware.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	h := &Handler{
		sites:    d.Sites,
		groups:   d.Groups,
		pages:    d.Pages,
		menu:     d.Menu,
		db:       d.DB,
		logger:   logger.Named("http"),
		validate: v,
	}

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	// CORS sits on the root mux so preflights are answered before routing.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Probes skip request logging.
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(Logging(h.logger))
		r.Use(Recovery(h.logger))

		r.Route("/api", func(r chi.Router) {
			r.Get("/status", h.Status)
			r.Get("/menu/{siteCode}", h.SiteMenu)

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.ListSites)
				r.Post("/", h.CreateSite)
				r.Get("/codes", h.ListSiteCodes)

				r.Route("/{siteCode}", func(r chi.Router) {
					r.Get("/", h.GetSite)
					r.Put("/", h.UpdateSite)
					r.Delete("/", h.DeleteSite)
					r.Get("/menu", h.SiteMenu)

					r.Route("/groups", func(r chi.Router) {
						r.Get("/", h.ListGroups)
						r.Post("/", h.CreateGroup)
						r.Route("/{groupID}", func(r chi.Router) {
							r.Get("/", h.GetGroup)
							r.Put("/", h.UpdateGroup)
							r.Delete("/", h.DeleteGroup)
							r.Get("/pages", h.ListGroupPages)
							r.Post("/pages", h.CreateGroupPage)
						})
					})

					r.Route("/pages", func(r chi.Router) {
						r.Get("/", h.ListPages)
						r.Post("/", h.CreatePage)
						r.Route("/{pageID}", func(r chi.Router) {
							r.Get("/", h.GetPage)
							r.Put("/", h.UpdatePage)
							r.Delete("/", h.DeletePage)
						})
					})
				})
			})
		})
	})

	return r
}
