package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/testutil"
	"pokedex/pkg/models"
)

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(testutil.NewDB(t))

	rec := testutil.Record(25, "pikachu", "electric")
	rec.LineageName = testutil.Str("pikachu")
	rec.VariantName = testutil.Str("pikachu")
	rec.HeightUnits = 4
	rec.WeightUnits = 60
	rec.Traits = []models.Trait{{Trait: "static", Slot: 1}, {Trait: "lightning-rod", IsHidden: true, Slot: 3}}
	rec.LearnableActions = []models.LearnableAction{{
		Action: "thunder-shock",
		AcquisitionDetails: []models.AcquisitionDetail{
			{LevelAcquired: 1, Method: "level-up", ContextGroup: "red-blue"},
		},
	}}

	created, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := repo.GetByID(ctx, 25)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Traits, got.Traits)
	assert.Equal(t, rec.LearnableActions, got.LearnableActions)
	assert.Equal(t, "pikachu", *got.LineageName)
	assert.Len(t, got.Assets, len(models.AssetSlots))

	// full overwrite: absent values replace old ones
	next := testutil.Record(25, "pikachu", "electric", "fairy")
	next.Assets = models.NewAssets()
	created, err = repo.Upsert(ctx, next)
	require.NoError(t, err)
	assert.False(t, created)

	got, err = repo.GetByID(ctx, 25)
	require.NoError(t, err)
	assert.Nil(t, got.LineageName)
	assert.Nil(t, got.VariantName)
	assert.Equal(t, 0, got.HeightUnits)
	assert.Empty(t, got.Traits)
	assert.Empty(t, got.LearnableActions)
	assert.Len(t, got.Categories, 2)
	assert.Nil(t, got.Assets[models.FrontDefault])
	assert.Len(t, got.Assets, len(models.AssetSlots))
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewRepo(testutil.NewDB(t))
	got, err := repo.GetByID(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReseedClearsMembershipsAndRecords(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewRepo(db)

	_, err := repo.Upsert(ctx, testutil.Record(1, "bulbasaur", "grass", "poison"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, testutil.Record(150, "mewtwo", "psychic"))
	require.NoError(t, err)

	res, err := db.Exec(`INSERT INTO rosters (name) VALUES ('team')`)
	require.NoError(t, err)
	rosterID, _ := res.LastInsertId()
	_, err = db.Exec(`INSERT INTO roster_members (roster_id, position, record_id) VALUES (?, 1, 150)`, rosterID)
	require.NoError(t, err)

	var calls int
	n, err := repo.Reseed(ctx, []models.CatalogRecord{
		testutil.Record(1, "bulbasaur", "grass", "poison"),
		testutil.Record(4, "charmander", "fire"),
	}, func(done, total int) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, calls)

	var members int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM roster_members`).Scan(&members))
	assert.Equal(t, 0, members)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	gone, err := repo.GetByID(ctx, 150)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(testutil.NewDB(t))
	for _, r := range []models.CatalogRecord{
		testutil.Record(4, "charmander", "fire"),
		testutil.Record(1, "bulbasaur", "grass", "poison"),
		testutil.Record(7, "squirtle", "water"),
	} {
		_, err := repo.Upsert(ctx, r)
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, ListQuery{Sort: SortIDDesc, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 4, 1}, ids(got))

	got, err = repo.List(ctx, ListQuery{Sort: SortNameAsc, Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"charmander", "squirtle"}, names(got))

	got, err = repo.List(ctx, ListQuery{Sort: SortIDAsc, Limit: -1, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	require.NoError(t, err)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 7}, ids(all))
	assert.Equal(t, "https://img.example/bulbasaur.png", *all[0].Sprites.FrontDefault)
}

func ids(in []models.CatalogRecordSummary) []int {
	out := make([]int, 0, len(in))
	for _, s := range in {
		out = append(out, s.ID)
	}
	return out
}

func names(in []models.CatalogRecordSummary) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Name)
	}
	return out
}
