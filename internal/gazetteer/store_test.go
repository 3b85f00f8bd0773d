package gazetteer

import (
	"errors"
	"testing"

	"github.com/ligacoach/ligacoach/internal/model"
)

func fixtureClubs() []model.ClubIdentity {
	return []model.ClubIdentity{
		{Key: "Q15789", Name: "FC Bayern München", City: "München", Aliases: []string{"Bayern", "FCB"}},
		{Key: "Q104770", Name: "1. FC Köln", City: "Köln", Aliases: []string{"Köln", "Koeln", "Cologne"}},
		{Key: "Q156745", Name: "FC St. Pauli", City: "Hamburg", Aliases: []string{"St. Pauli", "Pauli"}},
		{Key: "Q25373", Name: "Hamburger SV", City: "Hamburg", Aliases: []string{"HSV"}},
	}
}

func TestNewStoreValid(t *testing.T) {
	store, err := NewStore(fixtureClubs())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.Len() != 4 {
		t.Errorf("Len() = %d, want 4", store.Len())
	}
}

func TestNewStoreAliasCollision(t *testing.T) {
	clubs := fixtureClubs()
	// "Köln" normalizes to "koln", same as club Q104770's alias.
	clubs[0].Aliases = append(clubs[0].Aliases, "Köln")

	_, err := NewStore(clubs)
	if err == nil {
		t.Fatal("expected integrity error, got nil")
	}
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected *IntegrityError, got %T: %v", err, err)
	}
	if integrity.Alias != "koln" {
		t.Errorf("IntegrityError.Alias = %q, want %q", integrity.Alias, "koln")
	}
}

func TestNewStoreSameClubVariantTwice(t *testing.T) {
	clubs := fixtureClubs()
	// "Koeln" and "Köln" both normalize to "koln" but belong to one club.
	if _, err := NewStore(clubs); err != nil {
		t.Fatalf("same-club duplicate should be harmless: %v", err)
	}
}

func TestNewStoreRejectsIncompleteEntry(t *testing.T) {
	if _, err := NewStore([]model.ClubIdentity{{Key: "Q1"}}); err == nil {
		t.Error("expected error for entry without name")
	}
	if _, err := NewStore([]model.ClubIdentity{{Name: "FC Test"}}); err == nil {
		t.Error("expected error for entry without key")
	}
}

func TestNewStoreRejectsDuplicateKey(t *testing.T) {
	clubs := append(fixtureClubs(), model.ClubIdentity{Key: "Q15789", Name: "Duplicate"})
	if _, err := NewStore(clubs); err == nil {
		t.Error("expected error for duplicate club key")
	}
}

func TestLookupExact(t *testing.T) {
	store, err := NewStore(fixtureClubs())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	cases := []struct {
		text    string
		wantKey string
		wantOK  bool
	}{
		{"1. FC Köln", "Q104770", true},  // Canonical name, unnormalized input
		{"koeln", "Q104770", true},       // Transliterated alias
		{"COLOGNE", "Q104770", true},     // Case-insensitive
		{"St. Pauli", "Q156745", true},
		{"FCB", "Q15789", true},
		{"Hamburg", "", false}, // City, not an alias
		{"Schalke", "", false},
	}

	for _, tc := range cases {
		club, ok := store.LookupExact(tc.text)
		if ok != tc.wantOK {
			t.Errorf("LookupExact(%q) ok = %v, want %v", tc.text, ok, tc.wantOK)
			continue
		}
		if ok && club.Key != tc.wantKey {
			t.Errorf("LookupExact(%q) = %s, want %s", tc.text, club.Key, tc.wantKey)
		}
	}
}

func TestLookupCityFanOut(t *testing.T) {
	store, err := NewStore(fixtureClubs())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	clubs := store.LookupCity("Hamburg")
	if len(clubs) != 2 {
		t.Fatalf("LookupCity(Hamburg) returned %d clubs, want 2", len(clubs))
	}
	keys := map[string]bool{clubs[0].Key: true, clubs[1].Key: true}
	if !keys["Q156745"] || !keys["Q25373"] {
		t.Errorf("LookupCity(Hamburg) = %v, want St. Pauli and Hamburger SV", keys)
	}

	if clubs := store.LookupCity("München"); len(clubs) != 1 || clubs[0].Key != "Q15789" {
		t.Errorf("LookupCity(München) = %v, want [Q15789]", clubs)
	}
	if clubs := store.LookupCity("Madrid"); clubs != nil {
		t.Errorf("LookupCity(Madrid) = %v, want nil", clubs)
	}
}

func TestCanonical(t *testing.T) {
	store, err := NewStore(fixtureClubs())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	club, ok := store.Canonical("Q25373")
	if !ok || club.Name != "Hamburger SV" {
		t.Errorf("Canonical(Q25373) = %v/%v, want Hamburger SV", club.Name, ok)
	}
	if _, ok := store.Canonical("Q999999"); ok {
		t.Error("Canonical(Q999999) should not resolve")
	}

	if !store.IsCanonicalName("1. FC Köln") {
		t.Error("IsCanonicalName(1. FC Köln) = false, want true")
	}
	if store.IsCanonicalName("Cologne") {
		t.Error("IsCanonicalName(Cologne) = true, want false: alias, not canonical")
	}
}

func TestAliasesLongestFirst(t *testing.T) {
	store, err := NewStore(fixtureClubs())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	entries := store.Aliases()
	if len(entries) == 0 {
		t.Fatal("Aliases() returned nothing")
	}
	for i := 1; i < len(entries); i++ {
		if len(entries[i].Text) > len(entries[i-1].Text) {
			t.Errorf("alias order broken at %d: %q after %q", i, entries[i].Text, entries[i-1].Text)
		}
	}
}

func TestLoadEmbedded(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("embedded table failed to load: %v", err)
	}
	if store.Len() != 18 {
		t.Errorf("embedded table has %d clubs, want 18", store.Len())
	}

	// The table must carry the shared-city case the resolver depends on.
	if clubs := store.LookupCity("Hamburg"); len(clubs) != 2 {
		t.Errorf("embedded table: Hamburg hosts %d clubs, want 2", len(clubs))
	}
	if _, ok := store.LookupExact("Bayern"); !ok {
		t.Error("embedded table: alias Bayern missing")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/clubs.yaml"); err == nil {
		t.Error("expected error for missing table file")
	}
}

func TestWriteAndLoadTable(t *testing.T) {
	path := t.TempDir() + "/clubs.yaml"
	table := Table{Season: "2025-26", Clubs: fixtureClubs()}
	if err := WriteTable(path, table); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	store, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if store.Len() != len(fixtureClubs()) {
		t.Errorf("round-tripped table has %d clubs, want %d", store.Len(), len(fixtureClubs()))
	}
}
