package model

// RetrievalStatus is the closed set of retrieval outcomes. All of these are
// expected steady-state results of a live, partially curated knowledge graph,
// not errors.
type RetrievalStatus string

const (
	StatusOK                RetrievalStatus = "ok"
	StatusNotCurrentMember  RetrievalStatus = "club-not-current-member" // Club exists but is not in the league right now
	StatusManagerVacant     RetrievalStatus = "manager-vacant"          // Club is a member, manager post is empty
	StatusSourceUnavailable RetrievalStatus = "source-unavailable"      // Transport failure after the single retry
)

// ManagerRecord is the retriever's answer for one resolved club.
// Built per query; never cached across queries.
type ManagerRecord struct {
	Club       ClubIdentity    `json:"club"`
	Manager    string          `json:"manager,omitempty"`     // Empty when vacant, not a member, or unavailable
	ManagerKey string          `json:"manager_key,omitempty"` // Wikidata QID of the manager, when known
	Biography  string          `json:"biography,omitempty"`

	// Status reports the structured manager lookup. Biography reports the
	// free-text sub-fetch separately: a missing biography is a partial
	// success, the manager name is still usable.
	Status          RetrievalStatus `json:"status"`
	BiographyStatus RetrievalStatus `json:"biography_status,omitempty"` // Empty when the sub-fetch was never attempted
}

// HasManager reports whether the record carries a usable manager name
func (r ManagerRecord) HasManager() bool {
	return r.Status == StatusOK && r.Manager != ""
}
