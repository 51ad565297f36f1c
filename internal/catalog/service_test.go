package catalog

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/testutil"
	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

func seededService(t *testing.T, recs ...models.CatalogRecord) *Service {
	t.Helper()
	repo := NewRepo(testutil.NewDB(t))
	for _, r := range recs {
		_, err := repo.Upsert(context.Background(), r)
		require.NoError(t, err)
	}
	return NewService(repo)
}

func starters() []models.CatalogRecord {
	return []models.CatalogRecord{
		testutil.Record(1, "bulbasaur", "grass", "poison"),
		testutil.Record(4, "charmander", "fire"),
		testutil.Record(7, "squirtle", "water"),
		testutil.Record(25, "pikachu", "electric"),
		testutil.Record(26, "raichu", "electric"),
		testutil.Record(100, "Voltorb", "electric"),
	}
}

func TestSearchTwoRecordScenario(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t,
		testutil.Record(1, "bulbasaur", "grass", "poison"),
		testutil.Record(4, "charmander", "fire"),
	)

	got, err := svc.Search(ctx, "poison", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))

	page, err := svc.List(ctx, ListParams{Sort: "id-asc", Limit: testutil.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(page))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, starters()...)

	upper, err := svc.Search(ctx, "ELECTRIC", nil)
	require.NoError(t, err)
	lower, err := svc.Search(ctx, "  electric ", nil)
	require.NoError(t, err)

	assert.Equal(t, []int{25, 26, 100}, ids(lower))
	assert.Equal(t, lower, upper)

	byName, err := svc.Search(ctx, "voltorb", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{100}, ids(byName))
}

func TestSearchLimitAndValidation(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, starters()...)

	got, err := svc.Search(ctx, "chu", testutil.Int(1))
	require.NoError(t, err)
	assert.Equal(t, []int{25}, ids(got))

	got, err = svc.Search(ctx, "electric", testutil.Int(0))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Search(ctx, "dragon", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Search(ctx, "   ", nil)
	assert.True(t, pkgerrors.IsInvalidArgument(err))

	_, err = svc.Search(ctx, "x", testutil.Int(-1))
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestListSortsAreConsistent(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, starters()...)

	asc, err := svc.List(ctx, ListParams{Sort: "name-asc"})
	require.NoError(t, err)
	desc, err := svc.List(ctx, ListParams{Sort: "name-desc"})
	require.NoError(t, err)

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	assert.Equal(t, asc, reversed)

	byDefault, err := svc.List(ctx, ListParams{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 7, 25, 26, 100}, ids(byDefault))

	byIDDesc, err := svc.List(ctx, ListParams{Sort: "id-desc"})
	require.NoError(t, err)
	assert.Equal(t, []int{100, 26, 25, 7, 4, 1}, ids(byIDDesc))
}

func TestListPaging(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, starters()...)

	full, err := svc.List(ctx, ListParams{Sort: "id-asc"})
	require.NoError(t, err)
	require.Len(t, full, 6)

	page, err := svc.List(ctx, ListParams{Sort: "id-asc", Limit: testutil.Int(2), Offset: testutil.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, full[3:5], page)

	tail, err := svc.List(ctx, ListParams{Sort: "id-asc", Offset: testutil.Int(4)})
	require.NoError(t, err)
	assert.Equal(t, full[4:], tail)

	none, err := svc.List(ctx, ListParams{Limit: testutil.Int(0)})
	require.NoError(t, err)
	assert.Empty(t, none)

	past, err := svc.List(ctx, ListParams{Offset: testutil.Int(50)})
	require.NoError(t, err)
	assert.Empty(t, past)

	_, err = svc.List(ctx, ListParams{Limit: testutil.Int(-1)})
	assert.True(t, pkgerrors.IsInvalidArgument(err))
	_, err = svc.List(ctx, ListParams{Offset: testutil.Int(-3)})
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestGetAndCount(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, starters()...)

	rec, err := svc.Get(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, "pikachu", rec.Name)

	_, err = svc.Get(ctx, 999999)
	assert.True(t, pkgerrors.IsNotFound(err))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
