package wikidump

import (
	"sort"
	"strings"
)

// DefaultBlocklist lists the content models dropped when no blocklist
// is configured.
var DefaultBlocklist = []string{"interactivemap", "GeoJSON"}

// A Blocklist is a set of content model names.  Names are case
// sensitive.
type Blocklist map[string]struct{}

// NewBlocklist builds a blocklist from the given names, ignoring
// duplicates and blanks.
func NewBlocklist(names ...string) Blocklist {
	rv := Blocklist{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			rv[n] = struct{}{}
		}
	}
	return rv
}

// ParseBlocklist builds a blocklist from a comma separated list.
func ParseBlocklist(s string) Blocklist {
	return NewBlocklist(strings.Split(s, ",")...)
}

// Contains reports whether the model is blocked.
func (b Blocklist) Contains(model string) bool {
	_, ok := b[model]
	return ok
}

// Names returns the blocked models in sorted order.
func (b Blocklist) Names() []string {
	rv := make([]string, 0, len(b))
	for n := range b {
		rv = append(rv, n)
	}
	sort.Strings(rv)
	return rv
}

// A Decision is the classifier's verdict on a page.
type Decision struct {
	// Model is the blocked content model that caused a drop.
	Model string
	drop  bool
}

// Keep is the decision for pages that pass the blocklist.
var Keep = Decision{}

// Drop is the decision for a page whose content model is blocked.
func Drop(model string) Decision {
	return Decision{Model: model, drop: true}
}

// Dropped reports whether the page should be left out.
func (d Decision) Dropped() bool {
	return d.drop
}

func (d Decision) String() string {
	if d.drop {
		return "drop(" + d.Model + ")"
	}
	return "keep"
}

// Classify decides whether a page is kept.
//
// Only the last revision in document order counts; earlier revisions
// may carry a different model.  The last revision is not checked
// against revision ids.
func Classify(p *Page, b Blocklist) Decision {
	rev := p.LatestRevision()
	if rev == nil || rev.Model == "" || !b.Contains(rev.Model) {
		return Keep
	}
	return Drop(rev.Model)
}
