package retrieve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ligacoach/ligacoach/internal/model"
)

// fakeManagers replays a scripted sequence of lookup results
type fakeManagers struct {
	lookups []ManagerLookup
	errs    []error
	calls   int
}

func (f *fakeManagers) CurrentManager(ctx context.Context, club model.ClubIdentity) (ManagerLookup, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return ManagerLookup{}, f.errs[i]
	}
	if i < len(f.lookups) {
		return f.lookups[i], nil
	}
	return ManagerLookup{}, errors.New("unexpected call")
}

type fakeBios struct {
	bio   string
	err   error
	calls int
}

func (f *fakeBios) Biography(ctx context.Context, name, key string) (string, error) {
	f.calls++
	return f.bio, f.err
}

// noSleep replaces the retry backoff and records how often it fired
func noSleep(t *testing.T) *int {
	t.Helper()
	count := 0
	orig := retrySleep
	retrySleep = func(ctx context.Context, d time.Duration) error {
		count++
		return nil
	}
	t.Cleanup(func() { retrySleep = orig })
	return &count
}

var testClub = model.ClubIdentity{Key: "Q104770", Name: "1. FC Köln", City: "Köln"}

func TestRetrieveFullRecord(t *testing.T) {
	noSleep(t)
	managers := &fakeManagers{lookups: []ManagerLookup{
		{Member: true, Manager: "Lukas Kwasniok", ManagerKey: "Q57522"},
	}}
	bios := &fakeBios{bio: "Lukas Kwasniok is a German football manager."}

	record := New(managers, bios, 0).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusOK {
		t.Errorf("status = %s, want ok", record.Status)
	}
	if record.Manager != "Lukas Kwasniok" || record.ManagerKey != "Q57522" {
		t.Errorf("manager = %s/%s, want Lukas Kwasniok/Q57522", record.Manager, record.ManagerKey)
	}
	if record.BiographyStatus != model.StatusOK || record.Biography == "" {
		t.Errorf("biography = %q (%s), want text with status ok", record.Biography, record.BiographyStatus)
	}
	if !record.HasManager() {
		t.Error("HasManager() = false, want true")
	}
}

func TestRetrieveNotCurrentMember(t *testing.T) {
	noSleep(t)
	managers := &fakeManagers{lookups: []ManagerLookup{{Member: false}}}
	bios := &fakeBios{}

	record := New(managers, bios, 0).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusNotCurrentMember {
		t.Errorf("status = %s, want club-not-current-member", record.Status)
	}
	if bios.calls != 0 {
		t.Errorf("biography fetched %d times for a non-member, want 0", bios.calls)
	}
	if record.HasManager() {
		t.Error("HasManager() = true for a non-member")
	}
}

func TestRetrieveManagerVacant(t *testing.T) {
	noSleep(t)
	managers := &fakeManagers{lookups: []ManagerLookup{{Member: true, Manager: ""}}}
	bios := &fakeBios{}

	record := New(managers, bios, 0).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusManagerVacant {
		t.Errorf("status = %s, want manager-vacant", record.Status)
	}
	if bios.calls != 0 {
		t.Errorf("biography fetched %d times for a vacant post, want 0", bios.calls)
	}
}

func TestRetrieveRetriesOnceThenSucceeds(t *testing.T) {
	slept := noSleep(t)
	managers := &fakeManagers{
		errs:    []error{errors.New("503 from upstream"), nil},
		lookups: []ManagerLookup{{}, {Member: true, Manager: "Lukas Kwasniok"}},
	}
	bios := &fakeBios{bio: "bio"}

	record := New(managers, bios, 250*time.Millisecond).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusOK {
		t.Errorf("status = %s, want ok after retry", record.Status)
	}
	if managers.calls != 2 {
		t.Errorf("managers called %d times, want 2", managers.calls)
	}
	if *slept != 1 {
		t.Errorf("backoff slept %d times, want 1", *slept)
	}
}

func TestRetrieveUnavailableAfterSingleRetry(t *testing.T) {
	slept := noSleep(t)
	managers := &fakeManagers{errs: []error{errors.New("timeout"), errors.New("timeout")}}
	bios := &fakeBios{}

	record := New(managers, bios, 0).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusSourceUnavailable {
		t.Errorf("status = %s, want source-unavailable", record.Status)
	}
	if managers.calls != 2 {
		t.Errorf("managers called %d times, want exactly 2 (one retry)", managers.calls)
	}
	if *slept != 1 {
		t.Errorf("backoff slept %d times, want 1", *slept)
	}
	if record.Manager != "" || bios.calls != 0 {
		t.Error("unavailable record must carry no manager and skip the biography")
	}
}

func TestRetrieveBiographyFailureIsPartial(t *testing.T) {
	noSleep(t)
	managers := &fakeManagers{lookups: []ManagerLookup{
		{Member: true, Manager: "Lukas Kwasniok", ManagerKey: "Q57522"},
	}}
	bios := &fakeBios{err: ErrBiographyNotFound}

	record := New(managers, bios, 0).Retrieve(context.Background(), testClub)

	if record.Status != model.StatusOK {
		t.Errorf("status = %s, want ok: the manager fact stands", record.Status)
	}
	if record.Manager != "Lukas Kwasniok" {
		t.Errorf("manager = %q, want Lukas Kwasniok", record.Manager)
	}
	if record.BiographyStatus != model.StatusSourceUnavailable {
		t.Errorf("biography status = %s, want source-unavailable", record.BiographyStatus)
	}
	if record.Biography != "" {
		t.Errorf("biography = %q, want empty", record.Biography)
	}
}

func TestRetrieveCancelledDuringBackoff(t *testing.T) {
	managers := &fakeManagers{errs: []error{errors.New("timeout")}}
	bios := &fakeBios{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Real retrySleep: a cancelled context must abort the backoff wait.
	record := New(managers, bios, time.Minute).Retrieve(ctx, testClub)

	if record.Status != model.StatusSourceUnavailable {
		t.Errorf("status = %s, want source-unavailable", record.Status)
	}
	if managers.calls != 1 {
		t.Errorf("managers called %d times, want 1 (retry aborted)", managers.calls)
	}
}
