package markdown

import (
	"strings"
	"testing"

	"coffee-house/pkg/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestExtractHeadings(t *testing.T) {
	got := ExtractHeadings("## A\n### B\n# C")
	assert.Equal(t, []models.Heading{
		{Level: 2, Text: "A", ID: "a"},
		{Level: 3, Text: "B", ID: "b"},
		{Level: 1, Text: "C", ID: "c"},
	}, got)
}

func TestOutlineExcludesTopLevel(t *testing.T) {
	assert.Equal(t, []models.Heading{
		{Level: 2, Text: "A", ID: "a"},
		{Level: 3, Text: "B", ID: "b"},
	}, Outline("## A\n### B\n# C"))
}

func TestExtractHeadingsSkipsCodeAndMalformed(t *testing.T) {
	source := strings.Join([]string{
		"# Title #",
		"#NoSpace",
		"```bash",
		"# a shell comment",
		"```",
		"    ## indented code",
		"~~~",
		"## inside tilde fence",
		"~~~",
		"###### Deep",
	}, "\n")

	got := ExtractHeadings(source)
	require.Len(t, got, 2)
	assert.Equal(t, models.Heading{Level: 1, Text: "Title", ID: "title"}, got[0])
	assert.Equal(t, models.Heading{Level: 6, Text: "Deep", ID: "deep"}, got[1])
}

func TestOutlineKeepsLevelsTwoAndThree(t *testing.T) {
	got := Outline("# Top\n## Section\n### Sub\n#### Detail\n## Next")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"section", "sub", "next"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Getting Started", "getting-started"},
		{"punctuation", "What's new? (2024)", "whats-new-2024"},
		{"whitespace runs", "Brew   Ratio\tGuide", "brew-ratio-guide"},
		{"hyphen kept", "Pour-Over Basics", "pour-over-basics"},
		{"underscore kept", "cold_brew", "cold_brew"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSluggerDisambiguates(t *testing.T) {
	s := NewSlugger()
	assert.Equal(t, "tips", s.Next("Tips"))
	assert.Equal(t, "tips-1", s.Next("Tips"))
	assert.Equal(t, "tips-2", s.Next("tips"))
	assert.Equal(t, "heading", s.Next("???"))

	s = NewSlugger()
	s.Put([]byte("notes-1"))
	assert.Equal(t, "notes", s.Next("Notes"))
	assert.Equal(t, "notes-2", s.Next("Notes"))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{400, "2 min read"},
		{201, "2 min read"},
		{200, "1 min read"},
		{1, "1 min read"},
		{0, "1 min read"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadingTime(words(tt.words)), "%d words", tt.words)
	}
}

func TestRenderIDsMatchOutline(t *testing.T) {
	source := "# Guide\n\n## Tips\n\ntext\n\n### Tips\n\nmore\n\n## Brew Ratio\n"
	post, err := NewRenderer().Render(source)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(post.HTML))
	require.NoError(t, err)

	var ids []string
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})

	var outline []string
	for _, h := range post.Outline {
		outline = append(outline, h.ID)
	}
	assert.Equal(t, []string{"tips", "tips-1", "brew-ratio"}, outline)
	assert.Equal(t, outline, ids)
	assert.Equal(t, "1 min read", post.ReadTime)
}

func TestRenderIDsMatchOutlineForEveryHeadingForm(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"setext", "Tips\n----\n\n## Tips\n", []string{"tips", "tips-1"}},
		{"blockquote", "> ## Tips\n\n## Tips\n", []string{"tips", "tips-1"}},
		{"indented", "   ## Tips\n\n## Tips\n", []string{"tips", "tips-1"}},
		{"empty", "##\n\n## Heading\n", []string{"heading-1"}},
	}
	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := r.Render(tt.source)
			require.NoError(t, err)

			var outline []string
			for _, h := range post.Outline {
				outline = append(outline, h.ID)
			}
			assert.Equal(t, tt.want, outline)

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(post.HTML))
			require.NoError(t, err)
			for _, id := range outline {
				assert.Equal(t, 1, doc.Find("h2#"+id).Length(), "no h2 carries %q", id)
			}
			assert.Equal(t, outline, Outline(tt.source))
		})
	}
}

func TestRenderHighlightsCode(t *testing.T) {
	r := NewRenderer()

	html, err := r.HTML("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("pre.chroma").Length())

	// Unknown languages fall back without an error.
	html, err = r.HTML("```no-such-language\nbeans = 18g\n```\n")
	require.NoError(t, err)
	assert.Contains(t, html, "beans")
}

func TestRenderSanitizes(t *testing.T) {
	html, err := NewRenderer().HTML("Hello<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "Hello")
}

func TestRenderGFM(t *testing.T) {
	html, err := NewRenderer().HTML("| a | b |\n|---|---|\n| 1 | 2 |\n\nline one\nline two\n")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("td").Length())
	assert.Equal(t, 1, doc.Find("p br").Length())
}

func TestWriteStyles(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteStyles(&b))
	assert.Contains(t, b.String(), ".chroma")
}
