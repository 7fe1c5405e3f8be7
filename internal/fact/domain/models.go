package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Interaction is one fact row per support ticket, unique on the
// business ticket number. Foreign keys are nullable; an absent source
// value loads as NULL, never as a dangling reference.
type Interaction struct {
	InteractionID     snowflake.ID `gorm:"column:interaction_id;primaryKey" json:"interaction_id"`
	InteractionNumber string       `gorm:"column:interaction_number;uniqueIndex;not null" json:"interaction_number"`
	ShortDescription  string       `gorm:"column:short_description" json:"short_description"`
	InteractionType   string       `gorm:"column:interaction_type" json:"interaction_type"`
	WorkNotes         string       `gorm:"column:work_notes" json:"work_notes"`

	UserID       *string `gorm:"column:user_id" json:"user_id,omitempty"`
	TechID       *string `gorm:"column:tech_id" json:"tech_id,omitempty"`
	LocationID   *int64  `gorm:"column:location_id" json:"location_id,omitempty"`
	StateID      *int64  `gorm:"column:state_id" json:"state_id,omitempty"`
	OpenedDateID *int64  `gorm:"column:opened_date_id" json:"opened_date_id,omitempty"`

	OpenedAt   *time.Time `gorm:"column:opened_at" json:"opened_at,omitempty"`
	UpdatedAt  *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	IngestedAt time.Time  `gorm:"column:ingested_at;not null" json:"ingested_at"`
}

func (Interaction) TableName() string { return "fact_interactions" }

// Builder upserts fact rows by business key. All dimension ids on the
// row must already be resolved; the builder performs no resolution.
//
// On an existing key the mutable fields (description, type, notes,
// dimension references, updated timestamp) are replaced, while the
// internal id, opened date and ingestion timestamp of the first load
// are preserved.
type Builder interface {
	Upsert(ctx context.Context, row *Interaction) (created bool, err error)
}

type Factory interface {
	ForTrx(tx *gorm.DB) Builder
}
