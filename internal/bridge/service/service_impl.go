package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/opsfoundry/tickethouse/internal/bridge/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrMissingInteraction = errors.New("interaction number is required")

type FactoryParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
}

type Factory struct {
	log   *zap.Logger
	genID *snowflake.Node
}

func NewFactory(p FactoryParam) domain.Factory {
	return &Factory{
		log:   p.Log.Named("bridge.builder"),
		genID: p.GenID,
	}
}

func (f *Factory) ForTrx(tx *gorm.DB) domain.Builder {
	return &builder{tx: tx, genID: f.genID}
}

type builder struct {
	tx    *gorm.DB
	genID *snowflake.Node
}

func (b *builder) Link(ctx context.Context, link *domain.Link) (bool, error) {
	if link.InteractionNumber == "" {
		return false, ErrMissingInteraction
	}

	var existing domain.Link
	err := b.tx.WithContext(ctx).
		Where("interaction_number = ? AND incident_number = ?", link.InteractionNumber, link.IncidentNumber).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup link %s/%s: %w", link.InteractionNumber, link.IncidentNumber, err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		link.LinkID = b.genID.Generate()
		link.IngestedAt = time.Now().UTC()
		if err := b.tx.WithContext(ctx).Create(link).Error; err != nil {
			return false, fmt.Errorf("insert link %s/%s: %w", link.InteractionNumber, link.IncidentNumber, err)
		}
		return true, nil
	}

	// A later export without sysid context must not erase earlier
	// enrichment, so empty provenance values are left alone.
	updates := map[string]any{}
	for column, value := range map[string]string{
		"interaction_sysid": link.InteractionSysID,
		"incident_sysid":    link.IncidentSysID,
		"created_by":        link.CreatedBy,
		"created_on":        link.CreatedOn,
		"interaction_url":   link.InteractionURL,
		"incident_url":      link.IncidentURL,
	} {
		if value != "" {
			updates[column] = value
		}
	}
	if len(updates) > 0 {
		err = b.tx.WithContext(ctx).
			Model(&domain.Link{}).
			Where("link_id = ?", existing.LinkID).
			Updates(updates).Error
		if err != nil {
			return false, fmt.Errorf("update link %s/%s: %w", link.InteractionNumber, link.IncidentNumber, err)
		}
	}
	link.LinkID = existing.LinkID
	link.IngestedAt = existing.IngestedAt
	return false, nil
}
