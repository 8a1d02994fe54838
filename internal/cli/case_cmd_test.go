package cli

import (
	"context"
	"testing"

	"github.com/avikbasu/docket/internal/repository"
	"github.com/avikbasu/docket/internal/service"
	"github.com/avikbasu/docket/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	caseRepo := repository.NewSQLiteCaseRepo(database)
	hearRepo := repository.NewSQLiteHearingRepo(database)
	actRepo := repository.NewSQLiteActivityRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Hearings: service.NewHearingService(hearRepo, caseRepo, actRepo, uow),
		Cases:    service.NewCaseService(caseRepo, hearRepo),
		Activity: service.NewActivityService(actRepo),
	}
}

func TestResolveCase(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	c := testutil.NewTestCase("u1", testutil.WithCaseNumber("CRL-2025-0142"))
	require.NoError(t, app.Cases.Create(ctx, c))

	t.Run("by case number, case-insensitive", func(t *testing.T) {
		got, err := resolveCase(ctx, app, "u1", "crl-2025-0142")
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("by full ID", func(t *testing.T) {
		got, err := resolveCase(ctx, app, "u1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("by ID prefix", func(t *testing.T) {
		got, err := resolveCase(ctx, app, "u1", c.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := resolveCase(ctx, app, "u1", "zzz")
		assert.Error(t, err)
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := resolveCase(ctx, app, "u1", "")
		assert.Error(t, err)
	})

	t.Run("other owner cannot resolve", func(t *testing.T) {
		_, err := resolveCase(ctx, app, "u2", "CRL-2025-0142")
		assert.Error(t, err)
	})
}
