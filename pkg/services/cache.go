package services

import (
	"fmt"
	"io/fs"
	"sync"

	"coffee-house/pkg/content"
	"coffee-house/pkg/markdown"
	"coffee-house/pkg/models"

	log "github.com/sirupsen/logrus"
)

// Store loads the catalog on first use and keeps it, together with rendered
// post bodies, until Invalidate is called.
type Store struct {
	source   fs.FS
	renderer *markdown.Renderer

	mu       sync.Mutex
	catalog  *content.Catalog
	loaded   bool
	rendered map[string]models.RenderedPost
}

func NewStore(source fs.FS, renderer *markdown.Renderer) *Store {
	return &Store{
		source:   source,
		renderer: renderer,
		rendered: make(map[string]models.RenderedPost),
	}
}

// Catalog returns the current datasets, loading them if needed.
func (s *Store) Catalog() (*content.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.catalog, nil
	}

	cat, err := content.Load(s.source)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	log.WithFields(log.Fields(toFields(cat.Counts()))).Info("Content loaded")

	s.catalog = cat
	s.loaded = true
	return s.catalog, nil
}

// Post returns a post and its rendered body. Rendering happens once per
// post until the next Invalidate.
func (s *Store) Post(slug string) (models.BlogPost, models.RenderedPost, error) {
	cat, err := s.Catalog()
	if err != nil {
		return models.BlogPost{}, models.RenderedPost{}, err
	}
	post, err := cat.Post(slug)
	if err != nil {
		return models.BlogPost{}, models.RenderedPost{}, err
	}

	s.mu.Lock()
	cached, ok := s.rendered[slug]
	s.mu.Unlock()
	if ok {
		return post, cached, nil
	}

	rendered, err := s.renderer.Render(post.Content)
	if err != nil {
		return models.BlogPost{}, models.RenderedPost{}, fmt.Errorf("render %s: %w", slug, err)
	}

	s.mu.Lock()
	// A reload may have happened while rendering; only cache for the
	// catalog the post came from.
	if s.catalog == cat {
		s.rendered[slug] = rendered
	}
	s.mu.Unlock()
	return post, rendered, nil
}

// Invalidate drops the catalog and every rendered post.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.catalog = nil
	s.rendered = make(map[string]models.RenderedPost)
}

func toFields(counts map[string]int) map[string]any {
	fields := make(map[string]any, len(counts))
	for k, v := range counts {
		fields[k] = v
	}
	return fields
}
