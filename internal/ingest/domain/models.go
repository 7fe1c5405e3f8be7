package domain

import (
	"context"
	"errors"
	"time"
)

// ErrMandatorySource marks a source that was explicitly requested but
// cannot be read. Auto-discovered sources are optional and never raise it.
var ErrMandatorySource = errors.New("mandatory source unavailable")

// ErrDuplicateRecord marks a run rejected by a unique constraint. The
// wrapped error names the record and the constraint that collided.
var ErrDuplicateRecord = errors.New("duplicate key violation")

// RunOptions carries explicit source paths. An empty path means
// discover the latest matching export; a set path is mandatory.
type RunOptions struct {
	InteractionsPath string
	LinksPath        string
	SysIDPath        string
}

// Report summarizes one completed run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	UsersCreated       int `json:"users_created"`
	TechniciansCreated int `json:"technicians_created"`
	LocationsCreated   int `json:"locations_created"`
	StatesCreated      int `json:"states_created"`
	DatesCreated       int `json:"dates_created"`

	InteractionsCreated int `json:"interactions_created"`
	InteractionsUpdated int `json:"interactions_updated"`
	LinksCreated        int `json:"links_created"`
	LinksUpdated        int `json:"links_updated"`

	SkippedInteractions int `json:"skipped_interactions"`
	SkippedLinks        int `json:"skipped_links"`
	SkippedSysIDs       int `json:"skipped_sysids"`
}

// Stats are read-only row counts per warehouse table.
type Stats struct {
	Users        int64 `json:"users"`
	Technicians  int64 `json:"technicians"`
	Locations    int64 `json:"locations"`
	States       int64 `json:"states"`
	Dates        int64 `json:"dates"`
	Interactions int64 `json:"interactions"`
	Links        int64 `json:"links"`
}

// Service runs the batch pipeline. Run applies one batch inside a
// single transaction; a failed run leaves the store untouched. Stats
// never mutates.
type Service interface {
	Run(ctx context.Context, opts RunOptions) (*Report, error)
	Stats(ctx context.Context) (*Stats, error)
}
