package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/repository"
	"github.com/alexanderramin/imihigo/internal/templates"
	"github.com/alexanderramin/imihigo/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type persistenceFixture struct {
	svc   PersistenceService
	store *repository.SQLiteKVStore
	logs  *bytes.Buffer
}

func newPersistenceFixture(t *testing.T) persistenceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteKVStore(database)
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return persistenceFixture{
		svc:   NewPersistenceService(store, testutil.NewTestUoW(database), logger),
		store: store,
		logs:  logs,
	}
}

func assertSeed(t *testing.T, repo templates.Repository) {
	t.Helper()
	require.Equal(t, 1, repo.Len())
	c, err := repo.Contract(0)
	require.NoError(t, err)
	_, ok := c.Indicator("ind-1")
	assert.True(t, ok, "expected the seed contract")
}

func TestPersistence_LoadEmptyStoreUsesSeed(t *testing.T) {
	f := newPersistenceFixture(t)

	repo := f.svc.Load(context.Background())
	assertSeed(t, repo)
	sel, ok := repo.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 0, sel)
}

func TestPersistence_LoadCorruptFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		wantLog string
	}{
		{"not json", "{oops", "corrupt"},
		{"empty list", "[]", ""},
		{"empty contract", "[[]]", "corrupt"},
		{"null contract", "[null]", "corrupt"},
		{"partial quarters", `[[{"id":"p","name":"P","sectors":[{"id":"s","name":"S","outcomes":[{"id":"oc","name":"O","outputs":[{"id":"op","name":"O","indicators":[{"id":"i","name":"I","quarters":{"1":{"target":1,"achievement":0}}}]}]}]}]}]]`, "corrupt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPersistenceFixture(t)
			require.NoError(t, f.store.Set(context.Background(), KeyTemplates, tt.stored))

			assertSeed(t, f.svc.Load(context.Background()))
			if tt.wantLog != "" {
				assert.Contains(t, f.logs.String(), tt.wantLog)
			}
		})
	}
}

func TestPersistence_LoadDropsOnlyCorruptTemplates(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	good, err := json.Marshal(testutil.NewTestContract(
		testutil.WithIndicator("keep", testutil.Targets(1, 1, 1, 1), testutil.Achievements(0, 0, 0, 0)),
	))
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, KeyTemplates, "[[], "+string(good)+", null]"))

	repo := f.svc.Load(ctx)
	require.Equal(t, 1, repo.Len())
	c, err := repo.Contract(0)
	require.NoError(t, err)
	_, ok := c.Indicator("keep")
	assert.True(t, ok)
	assert.Contains(t, f.logs.String(), "dropping corrupt stored template")
}

func TestPersistence_LastSaved(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	ts, err := f.svc.LastSaved(ctx)
	require.NoError(t, err)
	assert.Nil(t, ts, "nothing written yet")

	require.NoError(t, f.svc.Save(ctx, templates.New([]*domain.Contract{domain.SeedContract()}, nil)))
	ts, err = f.svc.LastSaved(ctx)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.WithinDuration(t, time.Now(), *ts, time.Minute)
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2", 2, true},
		{" 3 ", 3, true},
		{"2x", 2, true},
		{"-1", -1, true},
		{"x2", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPersistence_SelectionFallbacks(t *testing.T) {
	ctx := context.Background()

	f := newPersistenceFixture(t)
	require.NoError(t, f.store.Set(ctx, KeySelectedIndex, "abc"))
	sel, ok := f.svc.Load(ctx).Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel)
	assert.Contains(t, f.logs.String(), "not a number")

	f = newPersistenceFixture(t)
	require.NoError(t, f.store.Set(ctx, KeySelectedIndex, "7"))
	repo := f.svc.Load(ctx)
	sel, _ = repo.Selected()
	assert.Equal(t, 7, sel, "stale index is kept as stored")
	assert.Nil(t, repo.Current())

	f = newPersistenceFixture(t)
	require.NoError(t, f.store.Set(ctx, KeySelectedIndex, "2x"))
	sel, ok = f.svc.Load(ctx).Selected()
	require.True(t, ok)
	assert.Equal(t, 2, sel)
	assert.NotContains(t, f.logs.String(), "not a number")
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	second := testutil.NewTestContract(
		testutil.WithIndicator("i2", testutil.Targets(1, 2, 3, 4), testutil.Achievements(1, 1, 1, 1), testutil.WithBaseline("n/a")),
	)
	repo, _, err := templates.New([]*domain.Contract{domain.SeedContract()}, nil).Append(second)
	require.NoError(t, err)

	require.NoError(t, f.svc.Save(ctx, repo))
	loaded := f.svc.Load(ctx)

	require.Equal(t, 2, loaded.Len())
	sel, ok := loaded.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 1, sel)
	for i := 0; i < 2; i++ {
		want, _ := repo.Contract(i)
		got, _ := loaded.Contract(i)
		if diff := cmp.Diff(want.Pillars(), got.Pillars(), cmp.AllowUnexported(domain.Baseline{})); diff != "" {
			t.Errorf("template %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestPersistence_ClearedSelectionDeletesKey(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	repo := templates.New([]*domain.Contract{domain.SeedContract()}, nil).SelectIndex(0)
	require.NoError(t, f.svc.Save(ctx, repo))
	_, err := f.store.Get(ctx, KeySelectedIndex)
	require.NoError(t, err)

	require.NoError(t, f.svc.Save(ctx, repo.Select(nil)))
	_, err = f.store.Get(ctx, KeySelectedIndex)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersistence_SaveRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteKVStore(database)
	require.NoError(t, store.Set(ctx, KeyTemplates, "previous"))

	injected := errors.New("disk full")
	svc := NewPersistenceService(store, &testutil.FaultyUoW{DB: database, FailAt: 2, Err: injected}, nil)

	err := svc.Save(ctx, templates.New([]*domain.Contract{domain.SeedContract()}, nil).SelectIndex(0))
	assert.ErrorIs(t, err, injected)

	got, err := store.Get(ctx, KeyTemplates)
	require.NoError(t, err)
	assert.Equal(t, "previous", got, "templates write must roll back with the selection write")
}

func TestPersistence_ObservesWorkspace(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	ws := templates.NewWorkspace(f.svc.Load(ctx), f.svc)
	_, err := ws.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		edited, err := r.Current().WithAchievement("ind-1", 4, 50)
		if err != nil {
			return r, err
		}
		return r.Replace(0, edited)
	})
	require.NoError(t, err)

	reloaded := f.svc.Load(ctx)
	ind, ok := reloaded.Current().Indicator("ind-1")
	require.True(t, ok)
	assert.Equal(t, 50.0, ind.Quarters[3].Achievement)
}

func TestPersistence_ReadsStringFigures(t *testing.T) {
	ctx := context.Background()
	f := newPersistenceFixture(t)

	stored := `[[{"id":"p","name":"P","sectors":[{"id":"s","name":"S","outcomes":[{"id":"oc","name":"O","outputs":[{"id":"op","name":"O","indicators":[{"id":"i","name":"I","baseline":12,"sourceOfData":"","annualTarget":"40","quarters":{"1":{"target":"10","achievement":5},"2":{"target":10,"achievement":0},"3":{"target":10,"achievement":0},"4":{"target":10,"achievement":null}}}]}]}]}]}]]`
	require.NoError(t, f.store.Set(ctx, KeyTemplates, stored))

	ind, ok := f.svc.Load(ctx).Current().Indicator("i")
	require.True(t, ok)
	assert.Equal(t, 40.0, ind.AnnualTarget)
	assert.Equal(t, 10.0, ind.Quarters[0].Target)
	assert.Equal(t, 12.0, ind.Baseline.Value)
	assert.Equal(t, "12", ind.Baseline.String())
}
