package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONWrappedRecords(t *testing.T) {
	path := writeFile(t, "sysid.json",
		`{"records": [{"interaction": "abc123", "task": "def456", "sys_created_by": "jsmith"}]}`)

	records, skipped, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "abc123", records[0].Get("interaction"))
	assert.Equal(t, "jsmith", records[0].Get("sys_created_by"))
}

func TestJSONBareArray(t *testing.T) {
	path := writeFile(t, "sysid.json",
		`[{"interaction": "a"}, {"interaction": "b"}]`)

	records, _, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1].Get("interaction"))
}

func TestJSONSingleObject(t *testing.T) {
	path := writeFile(t, "sysid.json", `{"interaction": "solo", "count": 3}`)

	records, _, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "solo", records[0].Get("interaction"))
	assert.Equal(t, "3", records[0].Get("count"))
}

func TestJSONSkipsNonObjectItems(t *testing.T) {
	path := writeFile(t, "sysid.json", `[{"interaction": "a"}, "stray", 42]`)

	records, skipped, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, records, 1)
}

func TestJSONEmptyFile(t *testing.T) {
	path := writeFile(t, "sysid.json", "")

	records, skipped, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, records)
}

func TestJSONMalformedPayload(t *testing.T) {
	path := writeFile(t, "sysid.json", "{not json")

	_, _, err := NewJSON(path, zap.NewNop()).Read(context.Background())
	assert.Error(t, err)
}
