package services

import (
	"reflect"
	"strings"
	"testing"

	"coffee-house/pkg/models"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propCategories = []string{"Brewing Guide", "Coffee Origins", "Menu Updates", "Sustainability"}
	propTags       = []string{"brewing", "espresso", "origins", "seasonal", "latte"}
	propQueries    = []string{"", "  ", "coffee", "ESPRESSO", "guide", "zzz", "Latte"}
)

func genPost() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 1000),
		gen.AlphaString(),
		gen.OneConstOf(propCategories[0], propCategories[1], propCategories[2], propCategories[3]),
		gen.SliceOfN(3, gen.OneConstOf(propTags[0], propTags[1], propTags[2], propTags[3], propTags[4])),
		gen.Bool(),
	).Map(func(v []interface{}) models.BlogPost {
		return models.BlogPost{
			ID:       v[0].(int),
			Title:    v[1].(string) + " coffee",
			Category: v[2].(string),
			Tags:     v[3].([]string),
			Featured: v[4].(bool),
		}
	})
}

func genState() gopter.Gen {
	categories := append([]interface{}{"", "All", "all"}, toAny(propCategories)...)
	tags := append([]interface{}{"", "All"}, toAny(propTags)...)
	return gopter.CombineGens(
		gen.OneConstOf(categories...),
		gen.OneConstOf(tags...),
		gen.OneConstOf(toAny(propQueries)...),
	).Map(func(v []interface{}) models.FilterState {
		return models.FilterState{Category: v[0].(string), Tag: v[1].(string), Query: v[2].(string)}
	})
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func contains(posts []models.BlogPost, p models.BlogPost) bool {
	for _, q := range posts {
		if reflect.DeepEqual(p, q) {
			return true
		}
	}
	return false
}

// TestFilterProperties checks the filter laws on generated datasets.
func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("result is a subset of the source", prop.ForAll(
		func(posts []models.BlogPost, state models.FilterState) bool {
			for _, p := range Filter(posts, state) {
				if !contains(posts, p) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPost()), genState(),
	))

	properties.Property("filtering twice equals filtering once", prop.ForAll(
		func(posts []models.BlogPost, state models.FilterState) bool {
			once := Filter(posts, state)
			return reflect.DeepEqual(once, Filter(once, state))
		},
		gen.SliceOf(genPost()), genState(),
	))

	properties.Property("All with an empty query is the identity", prop.ForAll(
		func(posts []models.BlogPost) bool {
			out := Filter(posts, models.FilterState{Category: models.All, Tag: models.All})
			return len(out) == len(posts) && (len(posts) == 0 || reflect.DeepEqual(out, posts))
		},
		gen.SliceOf(genPost()),
	))

	properties.Property("query case does not matter", prop.ForAll(
		func(posts []models.BlogPost, state models.FilterState) bool {
			upper := state
			upper.Query = strings.ToUpper(state.Query)
			lower := state
			lower.Query = strings.ToLower(state.Query)
			return reflect.DeepEqual(Filter(posts, upper), Filter(posts, lower))
		},
		gen.SliceOf(genPost()), genState(),
	))

	properties.Property("every result satisfies every predicate", prop.ForAll(
		func(posts []models.BlogPost, state models.FilterState) bool {
			for _, p := range Filter(posts, state) {
				if !MatchesCategory(p, state.Category) || !MatchesTag(p, state.Tag) || !MatchesQuery(p, state.Query) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPost()), genState(),
	))

	properties.Property("options start with All and are sorted", prop.ForAll(
		func(posts []models.BlogPost) bool {
			opts := CategoryOptions(posts)
			if opts[0] != models.All {
				return false
			}
			for i := 2; i < len(opts); i++ {
				if opts[i-1] >= opts[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPost()),
	))

	properties.TestingRun(t)
}
