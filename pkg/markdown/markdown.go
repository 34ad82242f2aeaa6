// Package markdown turns blog post bodies into sanitized HTML and extracts
// the heading outline used for in-page navigation.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"coffee-house/pkg/models"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

const (
	// WordsPerMinute is the reading speed behind ReadingTime.
	WordsPerMinute = 200

	// HighlightStyle is the chroma style the highlighter classes refer to.
	HighlightStyle = "github"

	minOutlineLevel = 2
	maxOutlineLevel = 3
)

var (
	safeAttr = regexp.MustCompile(`^[\w\- ]+$`)

	defaultRenderer = NewRenderer()
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds the GFM renderer with hard line breaks and syntax
// highlighting. Code blocks in an unknown language are highlighted with the
// lexer chroma guesses from their content.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(safeAttr).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(safeAttr).OnElements("pre", "code", "span")
	policy.AllowAttrs("align").Matching(regexp.MustCompile(`^(left|right|center)$`)).OnElements("th", "td")

	return &Renderer{md: md, policy: policy}
}

// HTML renders source and strips anything the sanitizer policy rejects.
func (r *Renderer) HTML(source string) (string, error) {
	html, _, err := r.convert(source)
	return html, err
}

// Render produces everything a post page needs from a markdown body.
func (r *Renderer) Render(source string) (models.RenderedPost, error) {
	html, headings, err := r.convert(source)
	if err != nil {
		return models.RenderedPost{}, err
	}
	return models.RenderedPost{
		HTML:     html,
		Outline:  outline(headings),
		ReadTime: ReadingTime(source),
	}, nil
}

// convert parses source once and renders the same tree the headings are
// read from, so outline anchors and heading IDs come from one Slugger.
func (r *Renderer) convert(source string) (string, []models.Heading, error) {
	src := []byte(source)
	doc := r.parse(src)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", nil, fmt.Errorf("convert markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), collectHeadings(doc, src), nil
}

func (r *Renderer) parse(src []byte) ast.Node {
	ctx := parser.NewContext(parser.WithIDs(NewSlugger()))
	return r.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))
}

// collectHeadings walks doc in document order. Headings without text keep
// the anchor goldmark gave them but are left out of the result.
func collectHeadings(doc ast.Node, src []byte) []models.Heading {
	var headings []models.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}

		lines := make([]string, 0, h.Lines().Len())
		for i := 0; i < h.Lines().Len(); i++ {
			seg := h.Lines().At(i)
			lines = append(lines, strings.TrimSpace(string(seg.Value(src))))
		}
		label := strings.TrimSpace(strings.Join(lines, " "))
		if label == "" {
			return ast.WalkSkipChildren, nil
		}

		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, models.Heading{Level: h.Level, Text: label, ID: id})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// ExtractHeadings returns every heading of source in document order, with
// the anchors the rendered HTML carries. Code blocks are not headings.
func ExtractHeadings(source string) []models.Heading {
	src := []byte(source)
	return collectHeadings(defaultRenderer.parse(src), src)
}

// Outline is the navigable table of contents: the level 2 and 3 headings of
// source. IDs are assigned over all headings, so they match the rendered HTML.
func Outline(source string) []models.Heading {
	return outline(ExtractHeadings(source))
}

func outline(all []models.Heading) []models.Heading {
	out := make([]models.Heading, 0, len(all))
	for _, h := range all {
		if h.Level >= minOutlineLevel && h.Level <= maxOutlineLevel {
			out = append(out, h)
		}
	}
	return out
}

// ReadingMinutes is the word count over WordsPerMinute, rounded up. Empty
// content still counts as one minute.
func ReadingMinutes(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		words = 1
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// ReadingTime formats ReadingMinutes for display, e.g. "2 min read".
func ReadingTime(content string) string {
	return fmt.Sprintf("%d min read", ReadingMinutes(content))
}

// WriteStyles writes the stylesheet for the highlighter's CSS classes.
func WriteStyles(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(HighlightStyle))
}
