package roster

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/catalog"
	"pokedex/internal/testutil"
	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

func seededRepo(t *testing.T) *Repo {
	t.Helper()
	db := testutil.NewDB(t)
	records := catalog.NewRepo(db)
	for _, rec := range []models.CatalogRecord{
		testutil.Record(1, "bulbasaur", "grass", "poison"),
		testutil.Record(4, "charmander", "fire"),
		testutil.Record(6, "charizard", "fire", "flying"),
		testutil.Record(7, "squirtle", "water"),
		testutil.Record(9, "blastoise", "water"),
		testutil.Record(25, "pikachu", "electric"),
	} {
		_, err := records.Upsert(context.Background(), rec)
		require.NoError(t, err)
	}
	return NewRepo(db)
}

func TestRepoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)

	ro, err := repo.Create(ctx, "Kanto starters")
	require.NoError(t, err)
	assert.Positive(t, ro.ID)
	assert.Equal(t, "Kanto starters", ro.Name)
	assert.NotNil(t, ro.Members)
	assert.Empty(t, ro.Members)
	assert.False(t, ro.CreatedAt.IsZero())

	missing, err := repo.Get(ctx, ro.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepoSetMembersIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	ro, err := repo.Create(ctx, "team")
	require.NoError(t, err)

	_, err = repo.SetMembers(ctx, ro.ID, []int{1, 4})
	require.NoError(t, err)

	_, err = repo.SetMembers(ctx, ro.ID, []int{7, 999999})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "one or more referenced records not found")

	got, err := repo.Get(ctx, ro.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, got.MemberIDs())

	_, err = repo.SetMembers(ctx, ro.ID+100, []int{1})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRepoListSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	for _, name := range []string{"Fire Squad", "water crew", "FIREWORKS"} {
		_, err := repo.Create(ctx, name)
		require.NoError(t, err)
	}
	first, err := repo.List(ctx, ListQuery{Search: "fire", Limit: -1})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Fire Squad", first[0].Name)
	assert.Equal(t, "FIREWORKS", first[1].Name)

	_, err = repo.SetMembers(ctx, first[0].ID, []int{4, 6})
	require.NoError(t, err)

	all, err := repo.List(ctx, ListQuery{Limit: -1})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{4, 6}, all[0].MemberIDs())
	assert.Empty(t, all[1].Members)

	page, err := repo.List(ctx, ListQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "water crew", page[0].Name)

	none, err := repo.List(ctx, ListQuery{Limit: -1, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepoConcurrentSetMembersNeverMix(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	ro, err := repo.Create(ctx, "contested")
	require.NoError(t, err)

	lists := [][]int{{1, 4, 7}, {6, 9, 25}}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		ids := lists[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.SetMembers(ctx, ro.ID, ids)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, ro.ID)
	require.NoError(t, err)
	assert.Contains(t, lists, got.MemberIDs())
}
