package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"coffee-house/pkg/content"
	"coffee-house/pkg/markdown"
	"coffee-house/pkg/models"
	"coffee-house/pkg/services"
	"coffee-house/pkg/widgets"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubSubmitter fails every submission with err, or accepts it when err is nil.
type stubSubmitter struct {
	err   error
	calls []services.Submission
}

func (s *stubSubmitter) Submit(_ context.Context, sub services.Submission) (services.Receipt, error) {
	s.calls = append(s.calls, sub)
	if s.err != nil {
		return services.Receipt{}, s.err
	}
	return services.Receipt{ID: "r-1", Kind: sub.Kind}, nil
}

type site struct {
	handler *Handler
	engine  *gin.Engine
	widgets []widgets.Widget
	catalog *content.Catalog
}

func newSite(t *testing.T, submitter services.Submitter) *site {
	t.Helper()
	store := services.NewStore(content.Embedded(), markdown.NewRenderer())
	cat, err := store.Catalog()
	require.NoError(t, err)

	if submitter == nil {
		submitter = services.NewSimulator(nil)
	}
	ws := widgets.Defaults()
	h, err := New(store, submitter, widgets.NewRegistry(ws...))
	require.NoError(t, err)
	engine, err := h.Engine("test-secret")
	require.NoError(t, err)

	return &site{handler: h, engine: engine, widgets: ws, catalog: cat}
}

func (s *site) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *site) get(t *testing.T, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := s.do(httptest.NewRequest(http.MethodGet, target, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func (s *site) liveWidgets() int {
	n := 0
	for _, w := range s.widgets {
		n += w.(*widgets.Tracked).Live()
	}
	return n
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPagesRender(t *testing.T) {
	s := newSite(t, nil)

	for _, path := range []string{"/", "/menu", "/gallery", "/blog", "/blog/art-of-pour-over-coffee", "/about", "/contact", "/reservations"} {
		t.Run(path, func(t *testing.T) {
			rec, doc := s.get(t, path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, 1, doc.Find("header.site-header").Length())
			assert.Equal(t, 1, doc.Find("footer form[action='/newsletter']").Length())

			var handles []widgets.Handle
			require.NoError(t, json.Unmarshal([]byte(doc.Find("#widgets").Text()), &handles))
			assert.NotEmpty(t, handles)
			assert.Zero(t, s.liveWidgets(), "widgets are disposed after the page is rendered")
		})
	}
}

func TestHomePage(t *testing.T) {
	s := newSite(t, nil)
	_, doc := s.get(t, "/")

	assert.Equal(t, len(s.catalog.Hero), doc.Find("#hero .slide").Length())
	assert.Equal(t, len(services.Featured(s.catalog.Posts, 3)), doc.Find(".featured-posts .post").Length())
	assert.Equal(t, len(services.Featured(s.catalog.Menu, 3)), doc.Find(".featured-menu .menu-item").Length())
	assert.Equal(t, len(s.catalog.Testimonials), doc.Find("#testimonials .testimonial").Length())

	var handles []widgets.Handle
	require.NoError(t, json.Unmarshal([]byte(doc.Find("#widgets").Text()), &handles))
	var names []string
	for _, h := range handles {
		names = append(names, h.Widget)
	}
	assert.Contains(t, names, widgets.HeroSlider)
	assert.Contains(t, names, widgets.TestimonialCarousel)
}

func TestMenuPageFilters(t *testing.T) {
	s := newSite(t, nil)

	coffee := services.Filter(s.catalog.Menu, models.FilterState{Category: "coffee"})
	require.NotEmpty(t, coffee)

	_, doc := s.get(t, "/menu?category=coffee")
	assert.Equal(t, len(coffee), doc.Find(".menu-grid .menu-item").Length())
	assert.Equal(t, "☕ Coffee", strings.TrimSpace(doc.Find(".filters a.active").Text()))

	_, doc = s.get(t, "/menu")
	assert.Equal(t, len(s.catalog.Menu), doc.Find(".menu-grid .menu-item").Length())

	_, doc = s.get(t, "/menu?q=no-such-drink")
	assert.Zero(t, doc.Find(".menu-grid .menu-item").Length())
	assert.Equal(t, "No items found", doc.Find(".empty").Text())
}

func TestGalleryPageFilters(t *testing.T) {
	s := newSite(t, nil)

	_, doc := s.get(t, "/gallery?category=interior")
	want := services.Filter(s.catalog.Gallery, models.FilterState{Category: "interior"})
	assert.Equal(t, len(want), doc.Find("#gallery-grid [data-lightbox]").Length())

	_, doc = s.get(t, "/gallery?category=all")
	assert.Equal(t, len(s.catalog.Gallery), doc.Find("#gallery-grid [data-lightbox]").Length())
}

func TestBlogSearchIsCaseInsensitive(t *testing.T) {
	s := newSite(t, nil)

	_, lower := s.get(t, "/blog?q=espresso")
	_, upper := s.get(t, "/blog?q=ESPRESSO")
	n := lower.Find(".posts .post").Length()
	assert.Positive(t, n)
	assert.Equal(t, n, upper.Find(".posts .post").Length())
}

func TestBlogFilterLinksKeepOtherSelections(t *testing.T) {
	s := newSite(t, nil)
	post := s.catalog.Posts[0]
	require.NotEmpty(t, post.Tags)

	target := "/blog?" + url.Values{"category": {post.Category}, "tag": {post.Tags[0]}, "q": {"coffee"}}.Encode()
	rec, doc := s.get(t, target)
	require.Equal(t, http.StatusOK, rec.Code)

	linkQuery := func(a *goquery.Selection) url.Values {
		href, ok := a.Attr("href")
		require.True(t, ok)
		u, err := url.Parse(href)
		require.NoError(t, err)
		assert.Equal(t, "/blog", u.Path)
		return u.Query()
	}

	categories := doc.Find(".filters.categories a")
	require.Positive(t, categories.Length())
	categories.Each(func(_ int, a *goquery.Selection) {
		q := linkQuery(a)
		assert.Equal(t, post.Tags[0], q.Get("tag"))
		assert.Equal(t, "coffee", q.Get("q"))
		if name := strings.TrimSpace(a.Text()); name == models.All {
			assert.False(t, q.Has("category"))
		} else {
			assert.Equal(t, name, q.Get("category"))
		}
	})

	doc.Find(".filters.tags a").Each(func(_ int, a *goquery.Selection) {
		q := linkQuery(a)
		assert.Equal(t, post.Category, q.Get("category"))
		assert.Equal(t, "coffee", q.Get("q"))
	})
	assert.Equal(t, post.Category, strings.TrimSpace(doc.Find(".filters.categories a.active").Text()))

	_, doc = s.get(t, "/blog")
	assert.Equal(t, "#All", strings.TrimSpace(doc.Find(".filters.tags a.active").Text()))
	assert.Equal(t, models.All, strings.TrimSpace(doc.Find(".filters.categories a.active").Text()))
}

func TestPostPageOutlineMatchesAnchors(t *testing.T) {
	s := newSite(t, nil)
	rec, doc := s.get(t, "/blog/art-of-pour-over-coffee")
	require.Equal(t, http.StatusOK, rec.Code)

	links := doc.Find(".outline a")
	require.Positive(t, links.Length())
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := strings.TrimPrefix(href, "#")
		assert.Equal(t, 1, doc.Find(".prose [id='"+id+"']").Length(), "anchor %s", id)
	})
}

func TestPostPageNotFound(t *testing.T) {
	s := newSite(t, nil)
	rec, doc := s.get(t, "/blog/no-such-post")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404", doc.Find(".error-page h1").Text())
}

func TestHighlightStylesheet(t *testing.T) {
	s := newSite(t, nil)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/assets/highlight.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
