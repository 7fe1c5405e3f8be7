package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Link is one bridge row per observed (interaction, incident) pair.
// The relationship is true many-to-many: an interaction may link to
// any number of incidents and vice versa.
type Link struct {
	LinkID            snowflake.ID `gorm:"column:link_id;primaryKey" json:"link_id"`
	InteractionNumber string       `gorm:"column:interaction_number;uniqueIndex:ux_bridge_pair;not null" json:"interaction_number"`
	IncidentNumber    string       `gorm:"column:incident_number;uniqueIndex:ux_bridge_pair" json:"incident_number"`

	InteractionSysID string `gorm:"column:interaction_sysid" json:"interaction_sysid"`
	IncidentSysID    string `gorm:"column:incident_sysid" json:"incident_sysid"`
	CreatedBy        string `gorm:"column:created_by" json:"created_by"`
	CreatedOn        string `gorm:"column:created_on" json:"created_on"`

	InteractionURL string `gorm:"column:interaction_url" json:"interaction_url"`
	IncidentURL    string `gorm:"column:incident_url" json:"incident_url"`

	IngestedAt time.Time `gorm:"column:ingested_at;not null" json:"ingested_at"`
}

func (Link) TableName() string { return "bridge_ims_inc" }

// Builder dedupes links on the natural pair. Re-linking an existing
// pair refreshes the provenance columns in place and creates no row.
type Builder interface {
	Link(ctx context.Context, link *Link) (created bool, err error)
}

type Factory interface {
	ForTrx(tx *gorm.DB) Builder
}
