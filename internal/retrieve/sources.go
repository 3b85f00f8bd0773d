package retrieve

import (
	"context"
	"errors"

	"github.com/ligacoach/ligacoach/internal/model"
)

// ManagerLookup is the structured source's answer for one club. Absence is
// modeled explicitly: a club missing from the league and a member club with
// a vacant post are different facts, not interchangeable failures.
type ManagerLookup struct {
	Member     bool   // Club is currently recorded as a league member
	Manager    string // Empty while the post is vacant
	ManagerKey string // Stable identifier of the manager, when the source has one
}

// ManagerSource queries the structured knowledge source for current-manager
// facts. Errors are transport-level only; missing data comes back as a
// ManagerLookup with the relevant fields unset.
type ManagerSource interface {
	CurrentManager(ctx context.Context, club model.ClubIdentity) (ManagerLookup, error)
}

// ErrBiographyNotFound reports that the free-text source has no entry for
// the requested person
var ErrBiographyNotFound = errors.New("biography not found")

// BiographySource looks up free-text biographies by name. The key is an
// optional stable-identifier hint; sources that cannot use it ignore it.
type BiographySource interface {
	Biography(ctx context.Context, name, key string) (string, error)
}
