//go:build dev && integration

package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/property-records-service/internal/models"
)

func TestPostgresBackend_Integration(t *testing.T) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set")
	}
	ctx := context.Background()

	b, err := ConnectPostgres(ctx, dbURL)
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Ping(ctx))

	before, err := b.Properties().ListAll(ctx)
	require.NoError(t, err)

	first := &models.Property{Owner: "it-owner", Address: "1 Test Way", Valuation: 1, Status: "available", CreatedAt: 1}
	second := &models.Property{Owner: "it-owner", Address: "2 Test Way", Valuation: 2, Status: "available", CreatedAt: 2}
	require.NoError(t, b.Properties().Create(ctx, first))
	require.NoError(t, b.Properties().Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	after, err := b.Properties().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+2)
	assert.Equal(t, *second, *after[len(after)-1])

	l := &models.LeaseAgreement{PropertyID: 999999, Tenant: "it-tenant", StartDate: 1, EndDate: 2}
	require.NoError(t, b.LeaseAgreements().Create(ctx, l))
	assert.NotZero(t, l.ID)
}
