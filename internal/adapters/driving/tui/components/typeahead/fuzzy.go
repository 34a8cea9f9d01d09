package typeahead

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

type scoredOption struct {
	option Option
	score  int
}

// filterOptions returns the options whose labels fuzzy-match query, best
// match first. Equal scores keep list order. An empty query keeps every
// option in list order.
func filterOptions(options []Option, query string) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Option(nil), options...)
	}
	initAlgo.Do(func() { algo.Init("default") })

	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(100*1024, 2048)

	matches := make([]scoredOption, 0, len(options))
	for _, o := range options {
		chars := util.ToChars([]byte(strings.ToLower(o.Label)))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, scoredOption{option: o, score: result.Score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Option, len(matches))
	for i := range matches {
		out[i] = matches[i].option
	}
	return out
}
