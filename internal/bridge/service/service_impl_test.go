package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/opsfoundry/tickethouse/internal/bridge/domain"
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
	require.NoError(t, db.AutoMigrate(&domain.Link{}))
	return db
}

func newBuilder(t *testing.T, db *gorm.DB) domain.Builder {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	factory := NewFactory(FactoryParam{Log: zap.NewNop(), GenID: node})
	return factory.ForTrx(db)
}

func TestLinkDedupesOnPair(t *testing.T) {
	db := newTestDB(t)
	builder := newBuilder(t, db)
	ctx := context.Background()

	created, err := builder.Link(ctx, &domain.Link{
		InteractionNumber: "IMS0001234",
		IncidentNumber:    "INC0005678",
		CreatedBy:         "jsmith",
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Same pair again: no new row, provenance refreshed.
	created, err = builder.Link(ctx, &domain.Link{
		InteractionNumber: "IMS0001234",
		IncidentNumber:    "INC0005678",
		CreatedBy:         "mjones",
		InteractionSysID:  "aaaa1111",
	})
	require.NoError(t, err)
	assert.False(t, created)

	// A different incident for the same interaction is a distinct row.
	created, err = builder.Link(ctx, &domain.Link{
		InteractionNumber: "IMS0001234",
		IncidentNumber:    "INC0005679",
	})
	require.NoError(t, err)
	assert.True(t, created)

	var count int64
	require.NoError(t, db.Model(&domain.Link{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var stored domain.Link
	require.NoError(t, db.First(&stored,
		"interaction_number = ? AND incident_number = ?", "IMS0001234", "INC0005678").Error)
	assert.Equal(t, "mjones", stored.CreatedBy)
	assert.Equal(t, "aaaa1111", stored.InteractionSysID)
}

func TestLinkKeepsEnrichmentWhenProvenanceMissing(t *testing.T) {
	db := newTestDB(t)
	builder := newBuilder(t, db)
	ctx := context.Background()

	created, err := builder.Link(ctx, &domain.Link{
		InteractionNumber: "IMS0001234",
		IncidentNumber:    "INC0005678",
		InteractionSysID:  "aaaa1111",
		IncidentSysID:     "bbbb2222",
		InteractionURL:    "https://example.service-now.com/interaction.do?sys_id=aaaa1111",
		IncidentURL:       "https://example.service-now.com/incident.do?sys_id=bbbb2222",
		CreatedBy:         "jsmith",
		CreatedOn:         "03-04-2024 10:05:02",
	})
	require.NoError(t, err)
	assert.True(t, created)

	// The pair shows up again without a sysid export behind it.
	created, err = builder.Link(ctx, &domain.Link{
		InteractionNumber: "IMS0001234",
		IncidentNumber:    "INC0005678",
		CreatedBy:         "mjones",
	})
	require.NoError(t, err)
	assert.False(t, created)

	var stored domain.Link
	require.NoError(t, db.First(&stored,
		"interaction_number = ? AND incident_number = ?", "IMS0001234", "INC0005678").Error)
	assert.Equal(t, "aaaa1111", stored.InteractionSysID)
	assert.Equal(t, "bbbb2222", stored.IncidentSysID)
	assert.Equal(t, "https://example.service-now.com/interaction.do?sys_id=aaaa1111", stored.InteractionURL)
	assert.Equal(t, "https://example.service-now.com/incident.do?sys_id=bbbb2222", stored.IncidentURL)
	assert.Equal(t, "mjones", stored.CreatedBy)
	assert.Equal(t, "03-04-2024 10:05:02", stored.CreatedOn)
}

func TestLinkManyToMany(t *testing.T) {
	db := newTestDB(t)
	builder := newBuilder(t, db)
	ctx := context.Background()

	pairs := [][2]string{
		{"IMS0000001", "INC0000010"},
		{"IMS0000001", "INC0000011"},
		{"IMS0000002", "INC0000010"},
	}
	for _, pair := range pairs {
		created, err := builder.Link(ctx, &domain.Link{
			InteractionNumber: pair[0],
			IncidentNumber:    pair[1],
		})
		require.NoError(t, err)
		assert.True(t, created)
	}

	var count int64
	require.NoError(t, db.Model(&domain.Link{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestLinkRequiresInteraction(t *testing.T) {
	db := newTestDB(t)
	builder := newBuilder(t, db)

	_, err := builder.Link(context.Background(), &domain.Link{IncidentNumber: "INC0000001"})
	assert.ErrorIs(t, err, ErrMissingInteraction)
}
