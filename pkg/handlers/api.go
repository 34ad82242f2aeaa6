package handlers

import (
	"net/http"

	"coffee-house/pkg/models"
	"coffee-house/pkg/services"
	"coffee-house/pkg/widgets"

	"github.com/gin-gonic/gin"
)

// bindState reads the filter selection from the query string.
func bindState(c *gin.Context) (*models.FilterState, bool) {
	var state models.FilterState
	if err := c.ShouldBindQuery(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return nil, false
	}
	return &state, true
}

func (h *Handler) ListPosts(c *gin.Context) {
	state, ok := bindState(c)
	if !ok {
		return
	}
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load posts"})
		return
	}
	result := services.Apply(cat.Posts, *state)
	// Listings carry the excerpt only.
	for i := range result.Items {
		result.Items[i].Content = ""
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetPost(c *gin.Context) {
	post, rendered, err := h.Store.Post(c.Param("slug"))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(status, gin.H{"error": "Failed to render post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"html":     rendered.HTML,
		"outline":  rendered.Outline,
		"readTime": rendered.ReadTime,
	})
}

func (h *Handler) ListMenu(c *gin.Context) {
	state, ok := bindState(c)
	if !ok {
		return
	}
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": cat.MenuCategories,
		"result":     services.Apply(cat.Menu, *state),
	})
}

func (h *Handler) ListGallery(c *gin.Context) {
	state, ok := bindState(c)
	if !ok {
		return
	}
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load gallery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": cat.GalleryCategories,
		"result":     services.Apply(cat.Gallery, *state),
	})
}

func (h *Handler) ListTeam(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load team"})
		return
	}
	c.JSON(http.StatusOK, cat.Team)
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load testimonials"})
		return
	}
	c.JSON(http.StatusOK, cat.Testimonials)
}

func (h *Handler) ListHero(c *gin.Context) {
	cat, err := h.Store.Catalog()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load slides"})
		return
	}
	c.JSON(http.StatusOK, cat.Hero)
}

// GetWidgets mounts a page's widgets and reports their handles, the same
// data a rendered page embeds for its scripts.
func (h *Handler) GetWidgets(c *gin.Context) {
	page := c.Param("page")
	if _, ok := h.Plans[page]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown page"})
		return
	}

	ctrl := widgets.NewController(h.Widgets, h.Plans)
	defer ctrl.Close()

	handles, err := ctrl.Enter(page)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to mount widgets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "widgets": handles})
}
