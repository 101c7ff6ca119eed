package identity

import (
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

func projections() []models.PlayerProjection {
	return []models.PlayerProjection{
		{ID: "1", Name: "Luka Dončić", ExternalID: "3945274"},
		{ID: "2", Name: "Jaren Jackson Jr.", ExternalID: "4277961"},
		{ID: "3", Name: "Shai Gilgeous-Alexander"},
		{ID: "4", Name: "Nikola Jokic"},
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Luka Dončić":             "luka doncic",
		"Jaren Jackson Jr.":       "jaren jackson",
		"Shai Gilgeous-Alexander": "shai gilgeous alexander",
		"  P.J. Washington ":      "pj washington",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("expected %q for %q, got %q", want, in, got)
		}
	}
}

func TestMatchPrefersExternalID(t *testing.T) {
	m := NewMatcher(projections())

	id, score, ok := m.Match("Somebody Else", "4277961")
	if !ok || id != "2" || score != 1 {
		t.Fatalf("expected external id match on 2, got %q %v %v", id, score, ok)
	}
}

func TestMatchExactAfterNormalizing(t *testing.T) {
	m := NewMatcher(projections())

	id, score, ok := m.Match("luka doncic", "")
	if !ok || id != "1" || score != 1 {
		t.Fatalf("expected exact match on 1, got %q %v %v", id, score, ok)
	}
}

func TestMatchFuzzy(t *testing.T) {
	m := NewMatcher(projections())

	id, score, ok := m.Match("Nikola Jokich", "")
	if !ok || id != "4" {
		t.Fatalf("expected fuzzy match on 4, got %q %v", id, ok)
	}
	if score >= 1 || score < DefaultThreshold {
		t.Fatalf("expected score in [0.7, 1), got %v", score)
	}

	if _, _, ok := m.Match("Victor Wembanyama", ""); ok {
		t.Fatal("expected no match for an unknown player")
	}
}

func TestMapRosterReportsUnmapped(t *testing.T) {
	m := NewMatcher(projections())
	entries := []models.RosterEntry{
		{TeamID: 1, Name: "Luka Doncic"},
		{TeamID: 2, Name: "Nikola Jokich"},
		{TeamID: 2, Name: "Victor Wembanyama"},
		{TeamID: 3, Name: "Nikola Jokic"},
	}

	mapping := m.MapRoster(entries)

	if mapping.Roster["1"] != 1 || mapping.Roster["4"] != 2 {
		t.Fatalf("unexpected roster: %v", mapping.Roster)
	}
	if len(mapping.Unmapped) != 2 {
		t.Fatalf("expected 2 unmapped entries, got %+v", mapping.Unmapped)
	}
	if len(mapping.Fuzzy) != 1 || mapping.Fuzzy[0].ProjectionID != "4" {
		t.Fatalf("expected one fuzzy match on 4, got %+v", mapping.Fuzzy)
	}
	// 2 unmapped, 1 fuzzy, 2 projections without external ids.
	if len(mapping.Warnings()) != 5 {
		t.Fatalf("expected 5 warnings, got %v", mapping.Warnings())
	}
}

func TestMapRosterListsProjectionsWithoutExternalID(t *testing.T) {
	mapping := NewMatcher(projections()).MapRoster(nil)

	want := []string{"Shai Gilgeous-Alexander", "Nikola Jokic"}
	if len(mapping.Unlinked) != len(want) {
		t.Fatalf("expected %v, got %v", want, mapping.Unlinked)
	}
	for i, name := range want {
		if mapping.Unlinked[i] != name {
			t.Fatalf("expected %v, got %v", want, mapping.Unlinked)
		}
	}

	found := false
	for _, w := range mapping.Warnings() {
		if w == "no external id for projection Nikola Jokic" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning for Nikola Jokic, got %v", mapping.Warnings())
	}
}

func TestMapRosterSkipsExternalIDCheckWithoutIDs(t *testing.T) {
	mapping := NewMatcher([]models.PlayerProjection{{ID: "1", Name: "Nikola Jokic"}}).MapRoster(nil)

	if len(mapping.Unlinked) != 0 || len(mapping.Warnings()) != 0 {
		t.Fatalf("expected no warnings for a name-only projection set, got %v", mapping.Warnings())
	}
}

func TestBestMatch(t *testing.T) {
	names := []string{"Stephen Curry", "Seth Curry", "Steven Adams"}

	i, _ := BestMatch("steph curry", names, DefaultThreshold)
	if i != 0 {
		t.Fatalf("expected Stephen Curry, got %d", i)
	}
	if i, _ := BestMatch("zzz", names, DefaultThreshold); i != -1 {
		t.Fatalf("expected no match, got %d", i)
	}
}
