package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranfysvalle02/bridgebase/internal/translate"
)

func TestMongo_RunLimitZero(t *testing.T) {
	// A zero limit must come back as zero rows without issuing a find; the
	// server would read limit 0 as unlimited. The executor has no live
	// connection here, so reaching the driver at all would fail the test.
	var zero int64
	m := &Mongo{}

	res, err := m.Run(context.Background(), Request{Translation: &translate.Translation{
		Collection: "users",
		Star:       true,
		Limit:      &zero,
	}})
	require.NoError(t, err)

	assert.Equal(t, "mongo", res.Backend)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Rows)
}

func TestMongo_RunRequiresTranslation(t *testing.T) {
	m := &Mongo{}
	_, err := m.Run(context.Background(), Request{SQL: "SELECT * FROM users"})
	require.Error(t, err)
}
