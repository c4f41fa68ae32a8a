package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Options tunes ranking. These are engine-tuning parameters, not
// correctness invariants; DefaultOptions values come from experimenting
// with typical misspellings.
type Options struct {
	// MaxResults caps the number of returned matches.
	MaxResults int
	// MinScore is the minimum similarity a match must reach.
	MinScore float64
}

// DefaultOptions returns the recommended tuning.
func DefaultOptions() Options {
	return Options{
		MaxResults: 5,
		MinScore:   0.6,
	}
}

// Match is one ranked candidate.
type Match struct {
	Name  string
	Scope Scope
	Score float64 // в [0,1]
}

// List is an ordered suggestion list, best match first.
type List []Match

// Best returns the top match, or "" when the list is empty.
func (l List) Best() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].Name
}

// Names returns the candidate names in ranked order.
func (l List) Names() []string {
	out := make([]string, len(l))
	for i, m := range l {
		out[i] = m.Name
	}
	return out
}

const caseSlipScore = 0.95

// Similar scores every candidate in the pools against query and returns
// the ranked matches above opts.MinScore. An empty result is an empty
// List, never an error. The work is proportional to the total number of
// candidates times the query length; pools are deduplicated before
// scoring so oversized builtin pools cost each name only once.
func Similar(query string, pools []Pool, opts Options) List {
	queryLen := utf8.RuneCountInString(query)
	if queryLen <= 1 || opts.MaxResults <= 0 {
		return nil
	}

	maxDist, candMin, candMax := lengthBand(queryLen)

	// дедуп: имя -> лучший (наименьший) scope
	seen := make(map[string]Scope)
	for _, pool := range pools {
		for _, name := range pool.Names {
			if name == "" {
				continue
			}
			if prev, ok := seen[name]; !ok || pool.Scope < prev {
				seen[name] = pool.Scope
			}
		}
	}

	matches := make(List, 0, opts.MaxResults)
	for name, scope := range seen {
		score, ok := scoreCandidate(query, queryLen, name, maxDist, candMin, candMax)
		if !ok || score < opts.MinScore {
			continue
		}
		matches = append(matches, Match{Name: name, Scope: scope, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Scope != matches[j].Scope {
			return matches[i].Scope < matches[j].Scope
		}
		return matches[i].Name < matches[j].Name
	})

	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// lengthBand returns the maximum edit distance for a query of the given
// rune length and the candidate-length band worth scoring. The bands
// mirror what feels like a plausible typo: one edit for short names,
// up to three for long ones.
func lengthBand(queryLen int) (maxDist, candMin, candMax int) {
	switch {
	case queryLen <= 4:
		return 1, 2, 5
	case queryLen <= 8:
		return 2, 4, 10
	default:
		return 3, 7, 1 << 30
	}
}

func scoreCandidate(query string, queryLen int, name string, maxDist, candMin, candMax int) (float64, bool) {
	if name == query {
		return 1.0, true
	}
	if strings.EqualFold(name, query) {
		// PI -> pi: одна лишь разница регистра
		return caseSlipScore, true
	}

	nameLen := utf8.RuneCountInString(name)
	if nameLen < candMin || nameLen > candMax {
		return 0, false
	}

	dist := boundedDistance(query, name, maxDist)
	if dist > maxDist {
		return 0, false
	}

	longest := queryLen
	if nameLen > longest {
		longest = nameLen
	}
	return 1.0 - float64(dist)/float64(longest), true
}
