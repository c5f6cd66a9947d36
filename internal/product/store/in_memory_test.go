package store

import (
	"context"
	"fmt"
	"sort"
	"testing"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func widget() Fields {
	return Fields{
		Name:        "Widget",
		Description: "A widget",
		Price:       decimal.RequireFromString("9.99"),
		Quantity:    5,
		Category:    "Tools",
	}
}

func Test_InMemory_InsertAndFindByID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()

	// when
	created := s.Insert(ctx, widget())
	found, err := s.FindByID(ctx, created.ID)

	// then
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, *created, *found)
	assert.Equal(t, "Widget", found.Name)
	assert.True(t, decimal.RequireFromString("9.99").Equal(found.Price))
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	found, err := s.FindByID(context.Background(), 1)

	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	assert.Nil(t, found)
}

func Test_InMemory_IDsAreNeverReused(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	first := s.Insert(ctx, widget())
	second := s.Insert(ctx, widget())

	// when
	require.NoError(t, s.DeleteByID(ctx, second.ID))
	third := s.Insert(ctx, widget())

	// then
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID)
}

func Test_InMemory_ListAll(t *testing.T) {
	testCases := []struct {
		name        string
		inserts     []string
		deletes     []int64
		expectedIDs []int64
	}{
		{
			name:        "empty store",
			expectedIDs: []int64{},
		},
		{
			name:        "insertion order",
			inserts:     []string{"a", "b", "c"},
			expectedIDs: []int64{1, 2, 3},
		},
		{
			name:        "deleted records are skipped",
			inserts:     []string{"a", "b", "c", "d"},
			deletes:     []int64{2, 4},
			expectedIDs: []int64{1, 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			ctx := context.Background()
			for _, name := range tc.inserts {
				f := widget()
				f.Name = name
				s.Insert(ctx, f)
			}
			for _, id := range tc.deletes {
				require.NoError(t, s.DeleteByID(ctx, id))
			}

			// when
			list := s.ListAll(ctx)

			// then
			require.NotNil(t, list)
			ids := make([]int64, 0, len(list))
			for _, p := range list {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func Test_InMemory_ListAllIsSnapshot(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	s.Insert(ctx, widget())

	// when
	list := s.ListAll(ctx)
	list[0].Name = "Changed"
	list[0].Quantity = 999
	list[0].ID = 77

	// then
	again := s.ListAll(ctx)
	require.Len(t, again, 1)
	assert.Equal(t, "Widget", again[0].Name)
	assert.Equal(t, int32(5), again[0].Quantity)
	_, err := s.FindByID(ctx, 77)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_ReturnedRecordIsCopy(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := s.Insert(ctx, widget())

	// when
	created.Name = "Mutated"
	found, _ := s.FindByID(ctx, created.ID)
	found.Category = "Mutated"

	// then
	again, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", again.Name)
	assert.Equal(t, "Tools", again.Category)
}

func Test_InMemory_Update(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := s.Insert(ctx, widget())
	newFields := Fields{
		Name:        "Gadget",
		Description: "A gadget",
		Price:       decimal.RequireFromString("19.50"),
		Quantity:    0,
		Category:    "Gizmos",
	}

	// when
	updated, err := s.Update(ctx, created.ID, newFields)

	// then
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *found)
	assert.Equal(t, "Gadget", found.Name)
	assert.Equal(t, "A gadget", found.Description)
	assert.Equal(t, int32(0), found.Quantity)
	assert.Equal(t, "Gizmos", found.Category)
	assert.True(t, decimal.RequireFromString("19.5").Equal(found.Price))
}

func Test_InMemory_Update_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	updated, err := s.Update(context.Background(), 3, widget())

	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	assert.Nil(t, updated)
}

func Test_InMemory_DeleteByID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	created := s.Insert(ctx, widget())

	// when
	err := s.DeleteByID(ctx, created.ID)
	errAgain := s.DeleteByID(ctx, created.ID)

	// then
	require.NoError(t, err)
	assert.ErrorIs(t, errAgain, perrors.ErrProductNotFound)
	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	assert.Empty(t, s.ListAll(ctx))
}

func Test_InMemory_ConcurrentInserts(t *testing.T) {
	// given
	const workers = 50
	const perWorker = 40
	s := NewInMemoryStore()
	ctx := context.Background()
	ids := make(chan int64, workers*perWorker)

	// when
	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for i := range perWorker {
				f := widget()
				f.Name = fmt.Sprintf("w%d-%d", w, i)
				ids <- s.Insert(ctx, f).ID
				_ = s.ListAll(ctx)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(ids)

	// then
	got := make([]int64, 0, workers*perWorker)
	for id := range ids {
		got = append(got, id)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	require.Len(t, got, workers*perWorker)
	for i, id := range got {
		assert.Equal(t, int64(i+1), id, "ids must be distinct and gap-free")
	}
	assert.Len(t, s.ListAll(ctx), workers*perWorker)
}

func Test_InMemory_ConcurrentMixedOperations(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	for range 100 {
		s.Insert(ctx, widget())
	}

	// when
	var g errgroup.Group
	for i := range 100 {
		id := int64(i + 1)
		g.Go(func() error {
			if id%2 == 0 {
				return s.DeleteByID(ctx, id)
			}
			f := widget()
			f.Quantity = int32(id)
			_, err := s.Update(ctx, id, f)
			return err
		})
		g.Go(func() error {
			list := s.ListAll(ctx)
			for j := 1; j < len(list); j++ {
				if list[j-1].ID >= list[j].ID {
					return fmt.Errorf("snapshot out of order at %d", j)
				}
			}
			return nil
		})
	}

	// then
	require.NoError(t, g.Wait())
	list := s.ListAll(ctx)
	require.Len(t, list, 50)
	for _, p := range list {
		assert.Equal(t, int64(1), p.ID%2)
		assert.Equal(t, int32(p.ID), p.Quantity)
	}
}
