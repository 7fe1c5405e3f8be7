package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/opsfoundry/tickethouse/internal/fact/domain"
	"github.com/opsfoundry/tickethouse/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrMissingNumber = errors.New("interaction number is required")

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
		log:   p.Log.Named("fact.builder"),
		genID: p.GenID,
	}
}

func (f *Factory) ForTrx(tx *gorm.DB) domain.Builder {
	return &builder{
		tx:    tx,
		store: repository.ProvideStore[domain.Interaction](tx),
		genID: f.genID,
	}
}

type builder struct {
	tx    *gorm.DB
	store repository.Repository[domain.Interaction]
	genID *snowflake.Node
}

func (b *builder) Upsert(ctx context.Context, row *domain.Interaction) (bool, error) {
	if row.InteractionNumber == "" {
		return false, ErrMissingNumber
	}

	existing, err := b.store.FindOne(ctx, &domain.Interaction{InteractionNumber: row.InteractionNumber})
	if err != nil {
		return false, fmt.Errorf("lookup interaction %q: %w", row.InteractionNumber, err)
	}

	if existing == nil {
		row.InteractionID = b.genID.Generate()
		row.IngestedAt = time.Now().UTC()
		if err := b.store.Create(ctx, row); err != nil {
			return false, fmt.Errorf("insert interaction %q: %w", row.InteractionNumber, err)
		}
		return true, nil
	}

	updates := map[string]any{
		"short_description": row.ShortDescription,
		"interaction_type":  row.InteractionType,
		"work_notes":        row.WorkNotes,
		"user_id":           row.UserID,
		"tech_id":           row.TechID,
		"location_id":       row.LocationID,
		"state_id":          row.StateID,
		"updated_at":        row.UpdatedAt,
	}
	err = b.tx.WithContext(ctx).
		Model(&domain.Interaction{}).
		Where("interaction_id = ?", existing.InteractionID).
		Updates(updates).Error
	if err != nil {
		return false, fmt.Errorf("update interaction %q: %w", row.InteractionNumber, err)
	}
	row.InteractionID = existing.InteractionID
	row.IngestedAt = existing.IngestedAt
	return false, nil
}
