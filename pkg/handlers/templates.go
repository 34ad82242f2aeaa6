package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/url"
	"strings"
	"time"

	"coffee-house/pkg/markdown"
	"coffee-house/pkg/models"
	"coffee-house/pkg/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// label turns ids such as "coffee-basics" into "Coffee Basics".
		"label": func(s string) string {
			return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(s))
		},
		"date": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"json": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				log.Warnf("Failed to encode template data: %v", err)
				return "null"
			}
			return template.JS(b)
		},
		// trusted marks renderer output, which is already sanitized.
		"trusted": func(s string) template.HTML {
			return template.HTML(s)
		},
		"stars": func(n int) []int {
			return make([]int, max(0, min(n, 5)))
		},
		"eq_fold":   strings.EqualFold,
		"filterURL": filterURL,
		"isAll":     services.IsAll,
	}
}

// filterURL links to path with state's selection, replacing only key.
// Picking "All" drops the parameter.
func filterURL(path string, state models.FilterState, key, value string) string {
	q := url.Values{}
	set := func(k, v string) {
		v = strings.TrimSpace(v)
		if v == "" || (k != "q" && services.IsAll(v)) {
			q.Del(k)
			return
		}
		q.Set(k, v)
	}
	set("category", state.Category)
	set("tag", state.Tag)
	set("q", state.Query)
	set(key, value)

	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
