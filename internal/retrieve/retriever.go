package retrieve

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ligacoach/ligacoach/internal/model"
)

// retrySleep is the sleep function used before the single retry (injectable for tests)
var retrySleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Retriever turns a resolved club into a ManagerRecord. Every outcome,
// including missing and stale data, is a first-class status on the record;
// Retrieve never fails without producing one.
type Retriever struct {
	managers ManagerSource
	bios     BiographySource
	backoff  time.Duration
}

// New creates a Retriever over the two knowledge sources
func New(managers ManagerSource, bios BiographySource, backoff time.Duration) *Retriever {
	return &Retriever{managers: managers, bios: bios, backoff: backoff}
}

// Retrieve fetches the current manager for the club, then the manager's
// biography. Fallback policy:
//
//   - club not a current league member: no further queries, the fact itself
//     answers the question
//   - member with an empty manager field: a deliberate "no answer"; a stale
//     former manager would misrepresent current state
//   - transport failure of the structured source: one retry after a short
//     backoff, then the whole record is marked unavailable
//   - biography failure or no-match: partial success, the manager name
//     stands and only the biography sub-fetch is marked unavailable
func (r *Retriever) Retrieve(ctx context.Context, club model.ClubIdentity) model.ManagerRecord {
	record := model.ManagerRecord{Club: club}

	lookup, err := r.lookupWithRetry(ctx, club)
	if err != nil {
		log.Warn("structured source unavailable", "club", club.Name, "err", err)
		record.Status = model.StatusSourceUnavailable
		return record
	}

	if !lookup.Member {
		record.Status = model.StatusNotCurrentMember
		return record
	}
	if lookup.Manager == "" {
		record.Status = model.StatusManagerVacant
		return record
	}

	record.Status = model.StatusOK
	record.Manager = lookup.Manager
	record.ManagerKey = lookup.ManagerKey

	bio, err := r.bios.Biography(ctx, lookup.Manager, lookup.ManagerKey)
	if err != nil {
		log.Debug("biography unavailable", "manager", lookup.Manager, "err", err)
		record.BiographyStatus = model.StatusSourceUnavailable
		return record
	}
	record.Biography = bio
	record.BiographyStatus = model.StatusOK
	return record
}

func (r *Retriever) lookupWithRetry(ctx context.Context, club model.ClubIdentity) (ManagerLookup, error) {
	lookup, err := r.managers.CurrentManager(ctx, club)
	if err == nil {
		return lookup, nil
	}
	if sleepErr := retrySleep(ctx, r.backoff); sleepErr != nil {
		return ManagerLookup{}, sleepErr
	}
	return r.managers.CurrentManager(ctx, club)
}
