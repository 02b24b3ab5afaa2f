package domain

import "time"

// MirrorFreshness describes what ensuring a mirror actually did
type MirrorFreshness int

const (
	// MirrorCloned means the mirror did not exist and was cloned fresh
	MirrorCloned MirrorFreshness = iota
	// MirrorRefreshed means the pull succeeded or the mirror was already current
	MirrorRefreshed
	// MirrorStale means the pull failed and existing content is being served
	MirrorStale
)

func (f MirrorFreshness) String() string {
	switch f {
	case MirrorCloned:
		return "cloned"
	case MirrorRefreshed:
		return "refreshed"
	case MirrorStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Mirror is a handle to the on-disk clone of a project. Callers may rely
// on the clone existing after a successful ensure, never on it being
// current; Freshness says which one they got.
type Mirror struct {
	ProjectID string
	Root      string
	Freshness MirrorFreshness
}

// SyncState is the outcome of an explicit sync request
type SyncState int

const (
	// SyncCloned means the mirror was absent and a clone took place
	SyncCloned SyncState = iota
	// SyncPulled means the pull completed
	SyncPulled
	// SyncDirty means the sync was refused because of uncommitted changes
	SyncDirty
)

// CommitReceipt reports one stage/commit/push round. A push failure never
// rolls back the commit; Pushed is false and PushErr carries the cause.
type CommitReceipt struct {
	Hash    string
	Message string
	Pushed  bool
	PushErr error
}

// CommitInfo is one entry of a mirror's history
type CommitInfo struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Message string
}

// SectionHit is one result from the section index
type SectionHit struct {
	ProjectID string
	Path      string
	Kind      string
	Title     string
	Preview   string
}
