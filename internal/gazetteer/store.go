package gazetteer

import (
	"fmt"
	"sort"

	"github.com/ligacoach/ligacoach/internal/model"
)

// IntegrityError reports two clubs claiming the same exact-normalized alias.
// This is a construction-time failure: the process must not start with a
// gazetteer that can silently misroute exact matches.
type IntegrityError struct {
	Alias string
	Keys  [2]string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("gazetteer integrity: alias %q maps to both %s and %s", e.Alias, e.Keys[0], e.Keys[1])
}

// AliasEntry pairs a normalized alias with the club it names
type AliasEntry struct {
	Text      string // Normalized form
	Club      model.ClubIdentity
	Canonical bool // True when the entry is the club's canonical name
}

// CityEntry pairs a normalized city name with every club it hosts
type CityEntry struct {
	Text  string // Normalized form
	Clubs []model.ClubIdentity
}

// Store is the immutable club gazetteer. Aliases across distinct clubs are
// disjoint in their exact-normalized forms; city names are kept in a separate
// index because a city may legitimately host more than one club.
type Store struct {
	clubs   map[string]model.ClubIdentity
	aliases map[string]string   // normalized alias -> club key
	canon   map[string]struct{} // normalized canonical names
	cities  map[string][]string // normalized city -> club keys

	aliasList []AliasEntry
	cityList  []CityEntry
}

// NewStore builds a Store from the loaded club table, verifying the
// alias-disjointness invariant. Returns *IntegrityError on violation.
func NewStore(clubs []model.ClubIdentity) (*Store, error) {
	s := &Store{
		clubs:   make(map[string]model.ClubIdentity, len(clubs)),
		aliases: make(map[string]string),
		canon:   make(map[string]struct{}),
		cities:  make(map[string][]string),
	}

	for _, club := range clubs {
		if club.Key == "" || club.Name == "" {
			return nil, fmt.Errorf("gazetteer: club entry missing key or name: %+v", club)
		}
		if _, dup := s.clubs[club.Key]; dup {
			return nil, fmt.Errorf("gazetteer: duplicate club key %s", club.Key)
		}
		s.clubs[club.Key] = club

		name := Normalize(club.Name)
		if err := s.addAlias(name, club.Key); err != nil {
			return nil, err
		}
		s.canon[name] = struct{}{}

		for _, alias := range club.Aliases {
			normalized := Normalize(alias)
			if normalized == "" {
				continue
			}
			if err := s.addAlias(normalized, club.Key); err != nil {
				return nil, err
			}
		}

		if club.City != "" {
			city := Normalize(club.City)
			s.cities[city] = append(s.cities[city], club.Key)
		}
	}

	s.buildLists()
	return s, nil
}

func (s *Store) addAlias(normalized, key string) error {
	if existing, ok := s.aliases[normalized]; ok {
		if existing == key {
			return nil // Same club listing a variant twice is harmless
		}
		return &IntegrityError{Alias: normalized, Keys: [2]string{existing, key}}
	}
	s.aliases[normalized] = key
	return nil
}

// buildLists materializes deterministic iteration orders: longest alias
// first so that scanning prefers "bayern munich" over "bayern".
func (s *Store) buildLists() {
	s.aliasList = make([]AliasEntry, 0, len(s.aliases))
	for text, key := range s.aliases {
		_, canonical := s.canon[text]
		s.aliasList = append(s.aliasList, AliasEntry{Text: text, Club: s.clubs[key], Canonical: canonical})
	}
	sort.Slice(s.aliasList, func(i, j int) bool {
		if len(s.aliasList[i].Text) != len(s.aliasList[j].Text) {
			return len(s.aliasList[i].Text) > len(s.aliasList[j].Text)
		}
		return s.aliasList[i].Text < s.aliasList[j].Text
	})

	s.cityList = make([]CityEntry, 0, len(s.cities))
	for text, keys := range s.cities {
		entry := CityEntry{Text: text}
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		for _, k := range sorted {
			entry.Clubs = append(entry.Clubs, s.clubs[k])
		}
		s.cityList = append(s.cityList, entry)
	}
	sort.Slice(s.cityList, func(i, j int) bool {
		if len(s.cityList[i].Text) != len(s.cityList[j].Text) {
			return len(s.cityList[i].Text) > len(s.cityList[j].Text)
		}
		return s.cityList[i].Text < s.cityList[j].Text
	})
}

// LookupExact returns the club owning the given alias, if any.
// The input is normalized before lookup.
func (s *Store) LookupExact(text string) (model.ClubIdentity, bool) {
	key, ok := s.aliases[Normalize(text)]
	if !ok {
		return model.ClubIdentity{}, false
	}
	return s.clubs[key], true
}

// LookupCity returns every club hosted by the named city
func (s *Store) LookupCity(text string) []model.ClubIdentity {
	keys := s.cities[Normalize(text)]
	if len(keys) == 0 {
		return nil
	}
	clubs := make([]model.ClubIdentity, 0, len(keys))
	for _, k := range keys {
		clubs = append(clubs, s.clubs[k])
	}
	return clubs
}

// Canonical returns the club for a stable key
func (s *Store) Canonical(key string) (model.ClubIdentity, bool) {
	club, ok := s.clubs[key]
	return club, ok
}

// IsCanonicalName reports whether the normalized text is some club's
// canonical name (as opposed to a secondary alias)
func (s *Store) IsCanonicalName(text string) bool {
	_, ok := s.canon[Normalize(text)]
	return ok
}

// Aliases returns every (alias, club) pair, longest alias first
func (s *Store) Aliases() []AliasEntry {
	return s.aliasList
}

// Cities returns every (city, clubs) entry, longest city first
func (s *Store) Cities() []CityEntry {
	return s.cityList
}

// Len returns the number of clubs in the store
func (s *Store) Len() int {
	return len(s.clubs)
}
