package handlers

import (
	"encoding/gob"
	"errors"
	"html/template"
	"net/http"
	"time"

	"coffee-house/pkg/config"
	"coffee-house/pkg/content"
	"coffee-house/pkg/services"
	"coffee-house/pkg/widgets"
	"coffee-house/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func init() {
	gob.Register(Notice{})
}

// Handler serves the site's pages and its JSON API.
type Handler struct {
	Store         *services.Store
	Submitter     services.Submitter
	Widgets       *widgets.Registry
	Plans         widgets.Plans
	Reload        *ReloadHub // nil unless content is watched
	SubmitTimeout time.Duration
	FeaturedLimit int
	RelatedLimit  int
}

// New wires a handler with the limits and timeouts from config.
func New(store *services.Store, submitter services.Submitter, registry *widgets.Registry) (*Handler, error) {
	if err := services.RegisterValidators(); err != nil {
		return nil, err
	}
	return &Handler{
		Store:         store,
		Submitter:     submitter,
		Widgets:       registry,
		Plans:         widgets.DefaultPlans(),
		SubmitTimeout: config.SubmitTimeout,
		FeaturedLimit: config.FeaturedLimit,
		RelatedLimit:  config.RelatedLimit,
	}, nil
}

// Engine builds the gin engine: templates, static assets, sessions and routes.
func (h *Handler) Engine(sessionSecret string) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode, MaxAge: 86400})
	r.Use(sessions.Sessions(config.SessionName, store))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/assets/highlight.css", ServeHighlightCSS)

	h.Register(r)
	return r, nil
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/menu", h.MenuPage)
	r.GET("/gallery", h.GalleryPage)
	r.GET("/blog", h.BlogPage)
	r.GET("/blog/:slug", h.PostPage)
	r.GET("/about", h.AboutPage)
	r.GET("/contact", h.ContactPage)
	r.POST("/contact", h.SubmitContact)
	r.GET("/reservations", h.ReservationsPage)
	r.POST("/reservations", h.SubmitReservation)
	r.POST("/newsletter", h.SubmitNewsletter)

	api := r.Group("/api")
	{
		api.GET("/blog", h.ListPosts)
		api.GET("/blog/:slug", h.GetPost)
		api.GET("/menu", h.ListMenu)
		api.GET("/gallery", h.ListGallery)
		api.GET("/team", h.ListTeam)
		api.GET("/testimonials", h.ListTestimonials)
		api.GET("/hero", h.ListHero)
		api.GET("/widgets/:page", h.GetWidgets)

		forms := api.Group("/forms")
		forms.POST("/contact", h.PostContact)
		forms.POST("/reservation", h.PostReservation)
		forms.POST("/newsletter", h.PostNewsletter)
	}

	if h.Reload != nil {
		r.GET("/dev/reload", h.Reload.Serve)
	}
}

// requestLogger logs each request through logrus.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Debug("Request served")
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSubmissionInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
