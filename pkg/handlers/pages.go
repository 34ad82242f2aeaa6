package handlers

import (
	"net/http"
	"time"

	"coffee-house/pkg/config"
	"coffee-house/pkg/models"
	"coffee-house/pkg/services"
	"coffee-house/pkg/widgets"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// render mounts the page's widgets for the duration of the render and adds the
// data every template expects.
func (h *Handler) render(c *gin.Context, status int, page, name string, data gin.H) {
	ctrl := widgets.NewController(h.Widgets, h.Plans)
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Warnf("Failed to dispose widgets of %s: %v", page, err)
		}
	}()

	handles, err := ctrl.Enter(page)
	if err != nil {
		log.Warnf("Failed to mount widgets of %s: %v", page, err)
	}

	if data == nil {
		data = gin.H{}
	}
	data["Site"] = config.SiteName
	data["Page"] = page
	data["Widgets"] = handles
	data["Notices"] = popNotices(c)
	data["Year"] = time.Now().Year()
	data["LiveReload"] = h.Reload != nil
	c.HTML(status, name, data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("Request %s failed: %v", c.Request.URL.Path, err)
	}
	c.Error(err)
	h.render(c, status, "error", "error.html", gin.H{
		"Status":  status,
		"Message": http.StatusText(status),
	})
}

func (h *Handler) Home(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "home", "home.html", gin.H{
		"Hero":          cat.Hero,
		"FeaturedMenu":  services.Featured(cat.Menu, h.FeaturedLimit),
		"FeaturedPosts": services.Featured(cat.Posts, h.FeaturedLimit),
		"Testimonials":  cat.Testimonials,
	})
}

func (h *Handler) MenuPage(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	var state models.FilterState
	_ = c.ShouldBindQuery(&state)

	h.render(c, http.StatusOK, "menu", "menu.html", gin.H{
		"Categories": cat.MenuCategories,
		"Items":      services.Filter(cat.Menu, state),
		"State":      state,
		"All":        services.IsAll(state.Category),
	})
}

func (h *Handler) GalleryPage(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	var state models.FilterState
	_ = c.ShouldBindQuery(&state)

	h.render(c, http.StatusOK, "gallery", "gallery.html", gin.H{
		"Categories": cat.GalleryCategories,
		"Images":     services.Filter(cat.Gallery, state),
		"State":      state,
		"All":        services.IsAll(state.Category),
	})
}

func (h *Handler) BlogPage(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	var state models.FilterState
	_ = c.ShouldBindQuery(&state)

	h.render(c, http.StatusOK, "blog", "blog.html", gin.H{
		"Result": services.Apply(cat.Posts, state),
	})
}

func (h *Handler) PostPage(c *gin.Context) {
	post, rendered, err := h.Store.Post(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "post", "post.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Rendered": rendered,
		"Related":  services.RelatedPosts(cat.Posts, post, h.RelatedLimit),
	})
}

func (h *Handler) AboutPage(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "about", "about.html", gin.H{
		"Team":         cat.Team,
		"Testimonials": cat.Testimonials,
	})
}

func (h *Handler) ContactPage(c *gin.Context) {
	formInstance(c)
	h.render(c, http.StatusOK, "contact", "contact.html", gin.H{
		"Form":   models.ContactForm{},
		"Errors": services.FieldErrors{},
	})
}

func (h *Handler) ReservationsPage(c *gin.Context) {
	formInstance(c)
	h.render(c, http.StatusOK, "reservations", "reservations.html", reservationData(models.ReservationForm{}, services.FieldErrors{}))
}

func reservationData(form models.ReservationForm, errs services.FieldErrors) gin.H {
	guests := make([]int, services.MaxPartySize)
	for i := range guests {
		guests[i] = i + 1
	}
	return gin.H{
		"Form":      form,
		"Errors":    errs,
		"TimeSlots": services.TimeSlots,
		"Guests":    guests,
		"Today":     time.Now().Format("2006-01-02"),
	}
}
