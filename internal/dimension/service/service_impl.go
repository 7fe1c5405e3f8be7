package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsfoundry/tickethouse/internal/dimension/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FactoryParam struct {
	fx.In

	Repo domain.Repository
	Log  *zap.Logger
}

type Factory struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewFactory(p FactoryParam) domain.Factory {
	return &Factory{
		repo: p.Repo,
		log:  p.Log.Named("dimension.resolver"),
	}
}

// ForTrx returns a resolver whose caches are scoped to tx. Surrogate
// id sequences are seeded from the store on first use, so ids stay
// stable across runs.
func (f *Factory) ForTrx(tx *gorm.DB) domain.Resolver {
	return &resolver{
		tx:    tx,
		repo:  f.repo,
		log:   f.log,
		users: make(map[string]struct{}),
		techs: make(map[string]struct{}),
	}
}

type resolver struct {
	tx   *gorm.DB
	repo domain.Repository
	log  *zap.Logger

	users map[string]struct{}
	techs map[string]struct{}

	locations      map[string]int64
	nextLocationID int64
	states         map[string]int64
	nextStateID    int64

	counts domain.Counts
}

func (r *resolver) ResolveUser(ctx context.Context, id, name string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if _, ok := r.users[id]; ok {
		return &id, nil
	}

	existing, err := r.repo.GetUser(ctx, r.tx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", id, err)
	}
	if existing == nil {
		user := &domain.User{
			UserID:    id,
			UserName:  displayName(name, id),
			CreatedAt: time.Now().UTC(),
		}
		if err := r.repo.InsertUser(ctx, r.tx, user); err != nil {
			return nil, fmt.Errorf("insert user %q: %w", id, err)
		}
		r.counts.Users++
	}
	r.users[id] = struct{}{}
	return &id, nil
}

func (r *resolver) ResolveTechnician(ctx context.Context, id, name string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if _, ok := r.techs[id]; ok {
		return &id, nil
	}

	existing, err := r.repo.GetTechnician(ctx, r.tx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup technician %q: %w", id, err)
	}
	if existing == nil {
		tech := &domain.Technician{
			TechID:    id,
			TechName:  displayName(name, id),
			CreatedAt: time.Now().UTC(),
		}
		if err := r.repo.InsertTechnician(ctx, r.tx, tech); err != nil {
			return nil, fmt.Errorf("insert technician %q: %w", id, err)
		}
		r.counts.Technicians++
	}
	r.techs[id] = struct{}{}
	return &id, nil
}

func (r *resolver) ResolveLocation(ctx context.Context, name string) (*int64, error) {
	name = collapse(name)
	if name == "" {
		return nil, nil
	}
	if r.locations == nil {
		if err := r.loadLocations(ctx); err != nil {
			return nil, err
		}
	}

	key := foldKey(name)
	if id, ok := r.locations[key]; ok {
		return &id, nil
	}

	id := r.nextLocationID
	r.nextLocationID++
	loc := &domain.Location{
		LocationID:   id,
		LocationName: name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.repo.InsertLocation(ctx, r.tx, loc); err != nil {
		return nil, fmt.Errorf("insert location %q: %w", name, err)
	}
	r.log.Debug("allocated location", zap.String("name", name), zap.Int64("id", id))
	r.locations[key] = id
	r.counts.Locations++
	return &id, nil
}

func (r *resolver) ResolveState(ctx context.Context, name string) (*int64, error) {
	name = collapse(name)
	if name == "" {
		return nil, nil
	}
	if r.states == nil {
		if err := r.loadStates(ctx); err != nil {
			return nil, err
		}
	}

	key := foldKey(name)
	if id, ok := r.states[key]; ok {
		return &id, nil
	}

	id := r.nextStateID
	r.nextStateID++
	state := &domain.State{
		StateID:   id,
		StateName: name,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.repo.InsertState(ctx, r.tx, state); err != nil {
		return nil, fmt.Errorf("insert state %q: %w", name, err)
	}
	r.log.Debug("allocated state", zap.String("name", name), zap.Int64("id", id))
	r.states[key] = id
	r.counts.States++
	return &id, nil
}

func (r *resolver) Counts() domain.Counts {
	return r.counts
}

func (r *resolver) loadLocations(ctx context.Context) error {
	rows, err := r.repo.ListLocations(ctx, r.tx)
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	r.locations = make(map[string]int64, len(rows))
	r.nextLocationID = 1
	for _, row := range rows {
		r.locations[foldKey(row.LocationName)] = row.LocationID
		if row.LocationID >= r.nextLocationID {
			r.nextLocationID = row.LocationID + 1
		}
	}
	return nil
}

func (r *resolver) loadStates(ctx context.Context) error {
	rows, err := r.repo.ListStates(ctx, r.tx)
	if err != nil {
		return fmt.Errorf("load states: %w", err)
	}
	r.states = make(map[string]int64, len(rows))
	r.nextStateID = 1
	for _, row := range rows {
		r.states[foldKey(row.StateName)] = row.StateID
		if row.StateID >= r.nextStateID {
			r.nextStateID = row.StateID + 1
		}
	}
	return nil
}

func displayName(name, fallback string) string {
	if name = collapse(name); name != "" {
		return name
	}
	return fallback
}
