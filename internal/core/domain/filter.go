package domain

import (
	"math"
	"strconv"
	"strings"
)

// FilterSpec is the client-facing filter over a listing pool. Zero values
// mean "inactive": an empty spec matches everything.
type FilterSpec struct {
	Search       string
	CategoryID   string
	PriceRange   string
	SurfaceRange string
}

// Range is an inclusive numeric interval. Open-ended ranges have
// Max = +Inf.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v falls inside the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ParseRange parses a range token of the form "min-max" or "min+".
// "1000+" yields [1000, +Inf). The second return value is false when the
// token is empty or malformed; callers treat such filters as inactive.
func ParseRange(tok string) (Range, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Range{}, false
	}

	if strings.HasSuffix(tok, "+") {
		min, err := strconv.ParseFloat(strings.TrimSuffix(tok, "+"), 64)
		if err != nil {
			return Range{}, false
		}
		return Range{Min: min, Max: math.Inf(1)}, true
	}

	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 {
		return Range{}, false
	}
	min, errMin := strconv.ParseFloat(parts[0], 64)
	max, errMax := strconv.ParseFloat(parts[1], 64)
	if errMin != nil || errMax != nil {
		return Range{}, false
	}
	return Range{Min: min, Max: max}, true
}

// FilterListings reduces items by the active predicates of spec, in order:
// search, category, price, surface. A listing must satisfy every active
// predicate. The filter is stable: original order is preserved, never sorted.
func FilterListings(items []*Listing, spec FilterSpec) []*Listing {
	out := items

	if term := strings.ToLower(strings.TrimSpace(spec.Search)); term != "" {
		out = keep(out, func(l *Listing) bool {
			return strings.Contains(strings.ToLower(l.Title), term) ||
				strings.Contains(strings.ToLower(l.Description), term) ||
				strings.Contains(strings.ToLower(l.Location), term)
		})
	}

	if spec.CategoryID != "" {
		out = keep(out, func(l *Listing) bool {
			return l.CategoryID == spec.CategoryID
		})
	}

	if r, ok := ParseRange(spec.PriceRange); ok {
		out = keep(out, func(l *Listing) bool {
			return r.Contains(l.Price)
		})
	}

	// Surface only constrains jobs; services pass through untouched.
	if r, ok := ParseRange(spec.SurfaceRange); ok {
		out = keep(out, func(l *Listing) bool {
			return l.Type != TypeJob || r.Contains(l.Surface)
		})
	}

	return out
}

func keep(items []*Listing, pred func(*Listing) bool) []*Listing {
	out := make([]*Listing, 0, len(items))
	for _, l := range items {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}
