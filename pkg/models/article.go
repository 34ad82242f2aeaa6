package models

import "time"

// Author is the byline shown on a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Avatar string `json:"avatar" yaml:"avatar" toml:"avatar"`
}

// BlogPost is a markdown article from the blog collection.
type BlogPost struct {
	ID          int       `json:"id" yaml:"id" toml:"id"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Slug        string    `json:"slug" yaml:"slug" toml:"slug"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	Content     string    `json:"content,omitempty" yaml:"-" toml:"-"` // Markdown body below the front matter
	Image       string    `json:"image" yaml:"image" toml:"image"`
	Category    string    `json:"category" yaml:"category" toml:"category"`
	Tags        []string  `json:"tags" yaml:"tags" toml:"tags"`
	Author      Author    `json:"author" yaml:"author" toml:"author"`
	PublishedAt time.Time `json:"publishedAt" yaml:"publishedAt" toml:"publishedAt"`
	ReadTime    string    `json:"readTime" yaml:"-" toml:"-"`
	Featured    bool      `json:"featured" yaml:"featured" toml:"featured"`
	Format      string    `json:"-" yaml:"-" toml:"-"` // yaml, toml
}

func (p BlogPost) FilterCategory() string { return p.Category }
func (p BlogPost) FilterTags() []string   { return p.Tags }

func (p BlogPost) SearchFields() []string {
	fields := make([]string, 0, 3+len(p.Tags))
	fields = append(fields, p.Title, p.Excerpt, p.Category)
	return append(fields, p.Tags...)
}

func (p BlogPost) IsFeatured() bool { return p.Featured }

// RenderedPost is the display form of a post body.
type RenderedPost struct {
	HTML     string    `json:"html"`
	Outline  []Heading `json:"outline"`
	ReadTime string    `json:"readTime"`
}

// Heading is one entry of a post's table of contents.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}
