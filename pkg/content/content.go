// Package content holds the shop's datasets and decodes them into an
// immutable Catalog.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"coffee-house/pkg/markdown"
	"coffee-house/pkg/models"

	"github.com/goccy/go-yaml"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when a lookup by slug or ID has no match.
var ErrNotFound = errors.New("content not found")

// Catalog is every dataset of the site. It is built once by Load and must not
// be modified afterwards; a reload builds a new Catalog.
type Catalog struct {
	Posts             []models.BlogPost
	MenuCategories    []models.MenuCategory
	Menu              []models.MenuItem
	GalleryCategories []models.GalleryCategory
	Gallery           []models.GalleryImage
	Team              []models.TeamMember
	Testimonials      []models.Testimonial
	Hero              []models.HeroSlide
}

type menuFile struct {
	Categories []models.MenuCategory `yaml:"categories"`
	Items      []models.MenuItem     `yaml:"items"`
}

type galleryFile struct {
	Categories []models.GalleryCategory `yaml:"categories"`
	Images     []models.GalleryImage    `yaml:"images"`
}

type teamFile struct {
	Members []models.TeamMember `yaml:"members"`
}

type testimonialsFile struct {
	Testimonials []models.Testimonial `yaml:"testimonials"`
}

type heroFile struct {
	Slides []models.HeroSlide `yaml:"slides"`
}

// Embedded returns the datasets compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load decodes every dataset found in fsys. The layout is menu.yaml,
// gallery.yaml, team.yaml, testimonials.yaml, hero.yaml and posts/*.md.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		cat     Catalog
		menu    menuFile
		gallery galleryFile
		team    teamFile
		reviews testimonialsFile
		hero    heroFile
	)

	for name, dst := range map[string]any{
		"menu.yaml":         &menu,
		"gallery.yaml":      &gallery,
		"team.yaml":         &team,
		"testimonials.yaml": &reviews,
		"hero.yaml":         &hero,
	} {
		if err := decodeYAML(fsys, name, dst); err != nil {
			return nil, err
		}
	}

	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}

	cat.Posts = posts
	cat.MenuCategories = menu.Categories
	cat.Menu = menu.Items
	cat.GalleryCategories = gallery.Categories
	cat.Gallery = gallery.Images
	cat.Team = team.Members
	cat.Testimonials = reviews.Testimonials
	cat.Hero = hero.Slides

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func decodeYAML(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.UnmarshalWithOptions(data, dst, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func loadPosts(fsys fs.FS) ([]models.BlogPost, error) {
	matches, err := fs.Glob(fsys, "posts/*.md")
	if err != nil {
		return nil, err
	}

	posts := make([]models.BlogPost, 0, len(matches))
	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var post models.BlogPost
		body, format, err := ParseFrontMatter(raw, &post)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(path.Base(name), ".md")
		}
		post.Content = body
		post.Format = format
		post.ReadTime = markdown.ReadingTime(body)
		posts = append(posts, post)
	}

	// Newest first, ties broken by ID so the order is stable across loads.
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

// Validate reports every identifier that occurs twice within one collection.
func (c *Catalog) Validate() error {
	var errs []error
	check := func(collection string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == "" {
				errs = append(errs, fmt.Errorf("%s: empty id", collection))
				continue
			}
			if seen[id] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", collection, id))
			}
			seen[id] = true
		}
	}

	check("posts", collect(c.Posts, func(p models.BlogPost) string { return fmt.Sprint(p.ID) }))
	check("post slugs", collect(c.Posts, func(p models.BlogPost) string { return p.Slug }))
	check("menu categories", collect(c.MenuCategories, func(m models.MenuCategory) string { return m.ID }))
	check("menu", collect(c.Menu, func(m models.MenuItem) string { return m.ID }))
	check("gallery categories", collect(c.GalleryCategories, func(g models.GalleryCategory) string { return g.ID }))
	check("gallery", collect(c.Gallery, func(g models.GalleryImage) string { return g.ID }))
	check("team", collect(c.Team, func(t models.TeamMember) string { return fmt.Sprint(t.ID) }))
	check("testimonials", collect(c.Testimonials, func(t models.Testimonial) string { return fmt.Sprint(t.ID) }))
	check("hero", collect(c.Hero, func(h models.HeroSlide) string { return h.ID }))

	return errors.Join(errs...)
}

func collect[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

// Post returns the post published under slug.
func (c *Catalog) Post(slug string) (models.BlogPost, error) {
	for _, p := range c.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.BlogPost{}, fmt.Errorf("post %q: %w", slug, ErrNotFound)
}

// Counts summarises the size of each collection.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"posts":        len(c.Posts),
		"menu":         len(c.Menu),
		"gallery":      len(c.Gallery),
		"team":         len(c.Team),
		"testimonials": len(c.Testimonials),
		"hero":         len(c.Hero),
	}
}
