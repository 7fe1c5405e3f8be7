package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/opsfoundry/tickethouse/internal/dimension/domain"
	"github.com/opsfoundry/tickethouse/internal/dimension/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Technician{},
		&domain.Location{},
		&domain.State{},
	))
	return db
}

func newFactory() domain.Factory {
	return NewFactory(FactoryParam{
		Repo: repository.Provide(),
		Log:  zap.NewNop(),
	})
}

func TestResolveUserFirstSeenWins(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	resolver := newFactory().ForTrx(db)

	id, err := resolver.ResolveUser(ctx, "U100", "Ursula Vance")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "U100", *id)

	// A corrected name on a later observation is not applied.
	id, err = resolver.ResolveUser(ctx, "U100", "Ursula B. Vance")
	require.NoError(t, err)
	assert.Equal(t, "U100", *id)

	var user domain.User
	require.NoError(t, db.First(&user, "user_id = ?", "U100").Error)
	assert.Equal(t, "Ursula Vance", user.UserName)
	assert.Equal(t, domain.Counts{Users: 1}, resolver.Counts())
}

func TestResolveUserEmptyKey(t *testing.T) {
	db := newTestDB(t)
	resolver := newFactory().ForTrx(db)

	id, err := resolver.ResolveUser(context.Background(), "", "Anonymous")
	require.NoError(t, err)
	assert.Nil(t, id)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResolveLocationCaseFolding(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	resolver := newFactory().ForTrx(db)

	first, err := resolver.ResolveLocation(ctx, "Austin")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, int64(1), *first)

	// Case and whitespace variants never create a second row.
	for _, variant := range []string{"austin", "AUSTIN", "  Austin  ", "aUsTiN"} {
		got, err := resolver.ResolveLocation(ctx, variant)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *first, *got, "variant %q", variant)
	}

	second, err := resolver.ResolveLocation(ctx, "Boston")
	require.NoError(t, err)
	assert.Equal(t, int64(2), *second)

	var locations []domain.Location
	require.NoError(t, db.Order("location_id").Find(&locations).Error)
	require.Len(t, locations, 2)
	assert.Equal(t, "Austin", locations[0].LocationName)
	assert.Equal(t, "Boston", locations[1].LocationName)
}

func TestResolveStateMonotonicIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	resolver := newFactory().ForTrx(db)

	for i, name := range []string{"Open", "Resolved", "Closed"} {
		id, err := resolver.ResolveState(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), *id)
	}
	assert.Equal(t, 3, resolver.Counts().States)
}

func TestResolverKeyStabilityAcrossRuns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	factory := newFactory()

	first := factory.ForTrx(db)
	austin1, err := first.ResolveLocation(ctx, "Austin")
	require.NoError(t, err)
	open1, err := first.ResolveState(ctx, "Open")
	require.NoError(t, err)

	// A fresh resolver simulates a later run: ids are read through from
	// the store, not re-allocated.
	second := factory.ForTrx(db)
	austin2, err := second.ResolveLocation(ctx, "austin")
	require.NoError(t, err)
	assert.Equal(t, *austin1, *austin2)

	pending, err := second.ResolveState(ctx, "Pending")
	require.NoError(t, err)
	assert.Equal(t, *open1+1, *pending)
	assert.Equal(t, domain.Counts{States: 1}, second.Counts())
}

func TestResolveTechnicianNameFallback(t *testing.T) {
	db := newTestDB(t)
	resolver := newFactory().ForTrx(db)

	id, err := resolver.ResolveTechnician(context.Background(), "T200", "")
	require.NoError(t, err)
	require.NotNil(t, id)

	var tech domain.Technician
	require.NoError(t, db.First(&tech, "tech_id = ?", "T200").Error)
	assert.Equal(t, "T200", tech.TechName)
}
