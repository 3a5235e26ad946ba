package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_AssignsIDAndSeq(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	a, err := s.Save(ctx, savedSearch("hotels", "hotel #travel"))
	require.NoError(t, err)
	b, err := s.Save(ctx, savedSearch("flights", "flight"))
	require.NoError(t, err)

	assert.Equal(t, "saved-0001", a.ID)
	assert.Equal(t, int64(1), a.Seq)
	assert.Equal(t, "saved-0002", b.ID)
	assert.Equal(t, int64(2), b.Seq)
}

func TestSave_IgnoresCallerIDAndSeq(t *testing.T) {
	s, _ := createTestStore(t)

	in := savedSearch("hotels", "hotel")
	in.ID = "caller-id"
	in.Seq = 99
	got, err := s.Save(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "saved-0001", got.ID)
	assert.Equal(t, int64(1), got.Seq)
}

func TestSave_UpsertKeepsIDAndBumpsSeq(t *testing.T) {
	s, ids := createTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, savedSearch("hotels", "hotel"))
	require.NoError(t, err)
	_, err = s.Save(ctx, savedSearch("flights", "flight"))
	require.NoError(t, err)

	updated := savedSearch("hotels", "hotel #travel")
	updated.Profile = "insights"
	updated.Fingerprint = "fp-new"
	second, err := s.Save(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(3), second.Seq)
	assert.Equal(t, 2, ids.Count(), "upsert must not mint a new ID")

	got, err := s.Get(ctx, "hotels")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "flights", all[0].Name)
	assert.Equal(t, "hotels", all[1].Name)
}

func TestSave_TrimsName(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, savedSearch("  hotels ", "hotel"))
	require.NoError(t, err)

	got, err := s.Get(ctx, "hotels")
	require.NoError(t, err)
	assert.Equal(t, "hotels", got.Name)
}

func TestSave_RequiresName(t *testing.T) {
	s, _ := createTestStore(t)

	_, err := s.Save(context.Background(), savedSearch("   ", "hotel"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestSave_Concurrent(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Save(ctx, savedSearch(string(rune('a'+i)), "q"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 20)
	for i, ss := range all {
		assert.Equal(t, int64(i+1), ss.Seq, "seq must be dense and unique")
	}
}

func TestGet_NotFound(t *testing.T) {
	s, _ := createTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestList_Empty(t *testing.T) {
	s, _ := createTestStore(t)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestList_OrderedBySeq(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		_, err := s.Save(ctx, savedSearch(name, name))
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, ss := range all {
		names = append(names, ss.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestByFingerprint(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	a := savedSearch("hotels", "hotel #travel")
	a.Fingerprint = "shared"
	b := savedSearch("hotels-again", "#travel hotel")
	b.Fingerprint = "shared"
	c := savedSearch("flights", "flight")

	for _, ss := range []SavedSearch{a, b, c} {
		_, err := s.Save(ctx, ss)
		require.NoError(t, err)
	}

	dupes, err := s.ByFingerprint(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, dupes, 2)
	assert.Equal(t, "hotels", dupes[0].Name)
	assert.Equal(t, "hotels-again", dupes[1].Name)

	none, err := s.ByFingerprint(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, savedSearch("hotels", "hotel"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "hotels"))

	_, err = s.Get(ctx, "hotels")
	require.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, "hotels")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_SeqKeepsIncreasing(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, savedSearch("a", "a"))
	require.NoError(t, err)
	b, err := s.Save(ctx, savedSearch("b", "b"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "a"))

	c, err := s.Save(ctx, savedSearch("c", "c"))
	require.NoError(t, err)
	assert.Greater(t, c.Seq, b.Seq)
}

func TestContextCancelled(t *testing.T) {
	s, _ := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, savedSearch("hotels", "hotel"))
	require.Error(t, err)
}
