package service

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"lemmyharvest/internal/services/harvest/domain"
)

func catalogOf(n int) []domain.Community {
	out := make([]domain.Community, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Community{
			Name:  fmt.Sprintf("community%d", i),
			Title: fmt.Sprintf("Community %d", i),
		})
	}
	return out
}

func TestRandomSortFromSet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sorts := domain.Sorts()
	for i := 0; i < 50; i++ {
		got := randomSort(rng, sorts)
		found := false
		for _, s := range sorts {
			if s == got {
				found = true
			}
		}
		if !found {
			t.Fatalf("randomSort returned %q, not a known cadence", got)
		}
	}
}

func TestSampleWithoutReplacementClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	got := sampleWithoutReplacement(rng, catalogOf(5), 10)
	if len(got) != 5 {
		t.Fatalf("len = %d, want the whole pool", len(got))
	}
	assertUniqueNames(t, got)

	if got := sampleWithoutReplacement(rng, catalogOf(5), 0); got != nil {
		t.Fatalf("k=0 should draw nothing, got %+v", got)
	}
}

func TestSampleCommunitiesShortCatalog(t *testing.T) {
	// a five-entry catalog never errors and never repeats a name
	rng := rand.New(rand.NewSource(3))
	got := sampleCommunities(rng, catalogOf(5), 10, 10)
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("len = %d, want 1..5", len(got))
	}
	assertUniqueNames(t, got)
}

func TestSampleCommunitiesDeepCatalog(t *testing.T) {
	all := catalogOf(30)
	rng := rand.New(rand.NewSource(11))
	got := sampleCommunities(rng, all, 10, 10)
	if len(got) < 10 || len(got) > 20 {
		t.Fatalf("len = %d, want the uniform draw plus at most the top-prefix draw", len(got))
	}
	assertUniqueNames(t, got)

	known := make(map[string]struct{}, len(all))
	for _, c := range all {
		known[c.Name] = struct{}{}
	}
	for _, c := range got {
		if _, ok := known[c.Name]; !ok {
			t.Fatalf("sampled %q not in the catalog", c.Name)
		}
	}
}

func TestSampleCommunitiesDeterministicUnderSeed(t *testing.T) {
	all := catalogOf(25)
	a := sampleCommunities(rand.New(rand.NewSource(42)), all, 10, 10)
	b := sampleCommunities(rand.New(rand.NewSource(42)), all, 10, 10)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed, different draw:\n%+v\n%+v", a, b)
	}
}

func assertUniqueNames(t *testing.T, cs []domain.Community) {
	t.Helper()
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if _, dup := seen[c.Name]; dup {
			t.Fatalf("duplicate community %q in %+v", c.Name, cs)
		}
		seen[c.Name] = struct{}{}
	}
}
