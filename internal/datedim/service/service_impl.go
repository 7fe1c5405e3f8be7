package service

import (
	"context"
	"fmt"
	"time"

	"github.com/opsfoundry/tickethouse/internal/datedim/domain"
	"github.com/opsfoundry/tickethouse/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Factory struct {
	log *zap.Logger
}

func NewFactory(log *zap.Logger) domain.Factory {
	return &Factory{log: log.Named("datedim.generator")}
}

func (f *Factory) ForTrx(tx *gorm.DB) domain.Generator {
	return &generator{
		store: repository.ProvideStore[domain.Date](tx),
		seen:  make(map[int64]struct{}),
	}
}

type generator struct {
	store   repository.Repository[domain.Date]
	seen    map[int64]struct{}
	created int
}

func (g *generator) Ensure(ctx context.Context, t time.Time) (int64, error) {
	key := domain.KeyFor(t)
	if _, ok := g.seen[key]; ok {
		return key, nil
	}

	existing, err := g.store.FindOne(ctx, &domain.Date{DateID: key})
	if err != nil {
		return 0, fmt.Errorf("lookup date %d: %w", key, err)
	}
	if existing == nil {
		row := domain.AttributesFor(t)
		if err := g.store.Create(ctx, &row); err != nil {
			return 0, fmt.Errorf("insert date %d: %w", key, err)
		}
		g.created++
	}
	g.seen[key] = struct{}{}
	return key, nil
}

func (g *generator) Created() int {
	return g.created
}
