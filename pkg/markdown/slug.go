package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// Slugify derives an anchor from heading text: lowercase, drop everything
// that is not a word character, whitespace or hyphen, then turn each run of
// whitespace into a single hyphen.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonSlugChars.ReplaceAllString(s, "")
	return spaceRuns.ReplaceAllString(s, "-")
}

// Slugger hands out unique anchors within one document. The second heading
// with the same text gets "-1", the third "-2", and so on.
//
// It implements goldmark's parser.IDs so rendered headings and the outline
// agree on every anchor.
type Slugger struct {
	taken map[string]bool
	next  map[string]int
}

func NewSlugger() *Slugger {
	return &Slugger{taken: make(map[string]bool), next: make(map[string]int)}
}

// Next returns the anchor for the next heading carrying text.
func (s *Slugger) Next(text string) string {
	base := Slugify(strings.TrimSpace(text))
	if base == "" {
		base = "heading"
	}

	n := s.next[base]
	id := base
	if n > 0 {
		id = base + "-" + strconv.Itoa(n)
	}
	for s.taken[id] {
		n++
		id = base + "-" + strconv.Itoa(n)
	}
	s.taken[id] = true
	s.next[base] = n + 1
	return id
}

// Generate implements parser.IDs.
func (s *Slugger) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(s.Next(string(value)))
}

// Put implements parser.IDs. Explicit IDs are reserved so generated ones
// never collide with them.
func (s *Slugger) Put(value []byte) {
	s.taken[string(value)] = true
}
