package dedup

import (
	"sort"

	"github.com/nao1215/dupmeta/internal/model"
)

// ExclusionSet is an immutable set of URLs already attributed to a more
// specific duplicate report. The zero value is an empty set.
//
// Union returns a new set, so a stage can never shrink or alter the
// exclusions it was handed.
type ExclusionSet struct {
	urls map[string]struct{}
}

// NewExclusionSet creates a set holding the given URLs.
func NewExclusionSet(urls ...string) ExclusionSet {
	m := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		m[u] = struct{}{}
	}
	return ExclusionSet{urls: m}
}

// URLsOf returns the URLs of every page across all groups.
func URLsOf(groups []model.Group) ExclusionSet {
	m := make(map[string]struct{})
	for _, g := range groups {
		for _, p := range g.Pages {
			m[p.URL] = struct{}{}
		}
	}
	return ExclusionSet{urls: m}
}

// Union returns a new set containing the URLs of both s and other.
func (s ExclusionSet) Union(other ExclusionSet) ExclusionSet {
	m := make(map[string]struct{}, len(s.urls)+len(other.urls))
	for u := range s.urls {
		m[u] = struct{}{}
	}
	for u := range other.urls {
		m[u] = struct{}{}
	}
	return ExclusionSet{urls: m}
}

// Contains reports whether url is excluded.
func (s ExclusionSet) Contains(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of excluded URLs.
func (s ExclusionSet) Len() int {
	return len(s.urls)
}

// sorted returns the excluded URLs in lexical order.
func (s ExclusionSet) sorted() []string {
	out := make([]string, 0, len(s.urls))
	for u := range s.urls {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
