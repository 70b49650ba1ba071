package domain

import (
	"math"
	"testing"
)

func sampleJobs() []*Listing {
	return []*Listing{
		{ID: "1", Type: TypeJob, Title: "Ristrutturazione bagno completa", Description: "rifacimento impianti", Location: "Milano", CategoryID: "cat1", Price: 5000, Surface: 8},
		{ID: "2", Type: TypeJob, Title: "Pulizie post cantiere", Description: "pulizia vetri e pavimenti", Location: "Roma", CategoryID: "cat2", Price: 300, Surface: 100},
		{ID: "3", Type: TypeJob, Title: "Manutenzione giardino", Description: "potatura e taglio erba", Location: "Torino", CategoryID: "cat1", Price: 1200, Surface: 200},
		{ID: "4", Type: TypeJob, Title: "Imbiancatura", Description: "rinnovo bagno e cucina", Location: "Milano", CategoryID: "cat2", Price: 800, Surface: 80},
	}
}

func ids(items []*Listing) []string {
	out := make([]string, len(items))
	for i, l := range items {
		out[i] = l.ID
	}
	return out
}

func TestFilterListings_EmptySpecIsIdentity(t *testing.T) {
	items := sampleJobs()
	got := FilterListings(items, FilterSpec{})
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("order changed at index %d", i)
		}
	}
}

func TestFilterListings_SearchMatchesAnyFieldCaseInsensitive(t *testing.T) {
	items := sampleJobs()

	got := FilterListings(items, FilterSpec{Search: "BAGNO"})
	want := []string{"1", "4"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %v in original order, got %v", want, ids(got))
		}
	}

	// Location is searchable too.
	got = FilterListings(items, FilterSpec{Search: "milano"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "4" {
		t.Fatalf("expected [1 4] by location, got %v", ids(got))
	}
}

func TestFilterListings_CategoryEquality(t *testing.T) {
	got := FilterListings(sampleJobs(), FilterSpec{CategoryID: "cat1"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("expected [1 3], got %v", ids(got))
	}
}

func TestFilterListings_PriceRange(t *testing.T) {
	got := FilterListings(sampleJobs(), FilterSpec{PriceRange: "300-1200"})
	if len(got) != 3 {
		t.Fatalf("expected inclusive bounds to keep 3 items, got %v", ids(got))
	}

	got = FilterListings(sampleJobs(), FilterSpec{PriceRange: "1000+"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("expected [1 3] for open range, got %v", ids(got))
	}
}

func TestFilterListings_SurfaceIgnoredForServices(t *testing.T) {
	items := []*Listing{
		{ID: "j", Type: TypeJob, Surface: 10},
		{ID: "s", Type: TypeService},
	}
	got := FilterListings(items, FilterSpec{SurfaceRange: "50-100"})
	if len(got) != 1 || got[0].ID != "s" {
		t.Fatalf("expected only the service to pass, got %v", ids(got))
	}
}

func TestFilterListings_PredicatesCompose(t *testing.T) {
	got := FilterListings(sampleJobs(), FilterSpec{
		Search:       "bagno",
		CategoryID:   "cat2",
		PriceRange:   "0-1000",
		SurfaceRange: "50+",
	})
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected only item 4, got %v", ids(got))
	}
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange("100-500")
	if !ok || r.Min != 100 || r.Max != 500 {
		t.Fatalf("unexpected range: %+v ok=%v", r, ok)
	}
	if !r.Contains(100) || !r.Contains(500) || r.Contains(501) {
		t.Fatalf("bounds must be inclusive")
	}

	r, ok = ParseRange("1000+")
	if !ok || r.Min != 1000 || !math.IsInf(r.Max, 1) {
		t.Fatalf("unexpected open range: %+v ok=%v", r, ok)
	}

	for _, tok := range []string{"", "abc", "10-", "-", "x+"} {
		if _, ok := ParseRange(tok); ok {
			t.Fatalf("expected %q to be rejected", tok)
		}
	}
}

func TestFilterListings_ZeroValueFieldsCoerce(t *testing.T) {
	// A listing with no price set counts as price 0.
	items := []*Listing{{ID: "free", Type: TypeService}}
	got := FilterListings(items, FilterSpec{PriceRange: "0-10"})
	if len(got) != 1 {
		t.Fatalf("expected zero price to match 0-10")
	}
}
