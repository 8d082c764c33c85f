package heap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reuben-baek/go-structs/data"
	"github.com/reuben-baek/go-structs/heap"
	"github.com/reuben-baek/go-structs/movie"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends runs fn once per ledger implementation.
func backends(t *testing.T, fn func(t *testing.T, h *heap.Heap)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, heap.NewInMemory())
	})
	t.Run("sqlite", func(t *testing.T) {
		db, err := data.OpenSQLite("file::memory:?_foreign_keys=on", logrus.WarnLevel)
		require.NoError(t, err)
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		})
		h, err := heap.NewGorm(db)
		require.NoError(t, err)
		fn(t, h)
	})
}

func requireStats(t *testing.T, h *heap.Heap, want heap.Stats) {
	t.Helper()
	stats, err := h.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, stats)
}

func TestBox(t *testing.T) {
	backends(t, func(t *testing.T, h *heap.Heap) {
		ctx := context.Background()
		box, err := heap.Alloc(ctx, h, movie.New("Baby Driver", 2016))
		require.NoError(t, err)
		assert.NotEmpty(t, box.ID())
		requireStats(t, h, heap.Stats{Allocated: 1, Live: 1})

		m, err := box.Get()
		require.NoError(t, err)
		assert.Equal(t, movie.New("Baby Driver", 2016), m)

		m.Year = 1
		err = box.Do(func(m *movie.Movie) error {
			m.Year = 2017
			return nil
		})
		require.NoError(t, err)
		again, err := box.Get()
		require.NoError(t, err)
		assert.Equal(t, 2017, again.Year)

		require.NoError(t, box.Release(ctx))
		requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})

		_, err = box.Get()
		assert.ErrorIs(t, err, heap.ErrReleased)
		assert.ErrorIs(t, box.Do(func(*movie.Movie) error { return nil }), heap.ErrReleased)
		err = box.Release(ctx)
		assert.ErrorIs(t, err, heap.ErrDoubleRelease)
		requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})
	})
}

func TestBox_RetainedLoan(t *testing.T) {
	ctx := context.Background()
	h := heap.NewInMemory()
	box, err := heap.Alloc(ctx, h, movie.New("Baby Driver", 2016))
	require.NoError(t, err)

	var kept *movie.Movie
	require.NoError(t, box.Do(func(m *movie.Movie) error {
		kept = m
		return nil
	}))

	kept.Year = 1
	m, err := box.Get()
	require.NoError(t, err)
	assert.Equal(t, 2016, m.Year, "writes after the loan ends do not reach the box")

	require.NoError(t, box.Release(ctx))

	kept.Year = 2
	_, err = box.Get()
	assert.ErrorIs(t, err, heap.ErrReleased)
	requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})
}

func TestBox_DoErrorDiscardsChanges(t *testing.T) {
	h := heap.NewInMemory()
	box, err := heap.Alloc(context.Background(), h, movie.New("Alien", 1979))
	require.NoError(t, err)

	errStop := errors.New("stop")
	err = box.Do(func(m *movie.Movie) error {
		m.Year = 1986
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	m, err := box.Get()
	require.NoError(t, err)
	assert.Equal(t, 1979, m.Year)
}

func TestWithBox(t *testing.T) {
	backends(t, func(t *testing.T, h *heap.Heap) {
		ctx := context.Background()
		var seen movie.Movie
		err := heap.WithBox(ctx, h, movie.New("Baby Driver", 2016), func(m *movie.Movie) error {
			seen = *m
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, movie.New("Baby Driver", 2016), seen)

		errCallback := errors.New("callback failed")
		err = heap.WithBox(ctx, h, movie.New("Alien", 1987), func(m *movie.Movie) error {
			return errCallback
		})
		assert.ErrorIs(t, err, errCallback)

		requireStats(t, h, heap.Stats{Allocated: 2, Released: 2})
	})
}

func TestArray(t *testing.T) {
	titles := []string{"Judge Dredd", "Midnight Express", "Independence Day"}
	years := []int{2012, 1987, 2004}
	build := func(i int) movie.Movie { return movie.New(titles[i], years[i]) }

	backends(t, func(t *testing.T, h *heap.Heap) {
		ctx := context.Background()
		movies, err := heap.AllocArray(ctx, h, len(titles), build)
		require.NoError(t, err)
		assert.Equal(t, 3, movies.Len())

		second, err := movies.At(1)
		require.NoError(t, err)
		assert.Equal(t, movie.New("Midnight Express", 1987), second)

		second.Year = 1
		unchanged, err := movies.At(1)
		require.NoError(t, err)
		assert.Equal(t, 1987, unchanged.Year)

		_, err = movies.At(3)
		assert.ErrorIs(t, err, heap.ErrOutOfRange)
		_, err = movies.At(-1)
		assert.ErrorIs(t, err, heap.ErrOutOfRange)

		require.NoError(t, movies.Set(2, movie.New("Rug Rats", 1995)))
		third, err := movies.At(2)
		require.NoError(t, err)
		assert.Equal(t, "Rug Rats", third.Title)

		require.NoError(t, movies.Release(ctx))
		assert.Equal(t, 0, movies.Len())
		_, err = movies.At(0)
		assert.ErrorIs(t, err, heap.ErrReleased)
		assert.ErrorIs(t, movies.Set(0, movie.Movie{}), heap.ErrReleased)
		assert.ErrorIs(t, movies.Update(0, func(*movie.Movie) error { return nil }), heap.ErrReleased)
		assert.ErrorIs(t, movies.Release(ctx), heap.ErrDoubleRelease)

		requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})
	})
}

func TestAllocArray_InvalidLength(t *testing.T) {
	h := heap.NewInMemory()
	for _, n := range []int{0, -1} {
		_, err := heap.AllocArray(context.Background(), h, n, func(int) movie.Movie { return movie.Movie{} })
		assert.ErrorIs(t, err, heap.ErrInvalidLength)
	}
	requireStats(t, h, heap.Stats{})
}

func TestCursor_MatchesIndex(t *testing.T) {
	titles := []string{"Judge Dredd", "Midnight Express", "Independence Day", "Jaws", "Alien"}
	build := func(i int) movie.Movie { return movie.New(titles[i], 1970+i) }

	backends(t, func(t *testing.T, h *heap.Heap) {
		ctx := context.Background()
		err := heap.WithArray(ctx, h, len(titles), build, func(movies *heap.Array[movie.Movie]) error {
			var byIndex []movie.Movie
			for i := 0; i < movies.Len(); i++ {
				m, err := movies.At(i)
				if err != nil {
					return err
				}
				byIndex = append(byIndex, m)
			}

			var byCursor []movie.Movie
			c := movies.Cursor()
			assert.False(t, c.Valid())
			for c.Next() {
				assert.True(t, c.Valid())
				assert.Equal(t, len(byCursor), c.Index())
				byCursor = append(byCursor, c.Value())
			}
			require.NoError(t, c.Err())
			assert.False(t, c.Next())
			assert.False(t, c.Valid())
			assert.Zero(t, c.Value())

			assert.Equal(t, byIndex, byCursor)
			return nil
		})
		require.NoError(t, err)
		requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})
	})
}

func TestArray_UpdateAndEach(t *testing.T) {
	ctx := context.Background()
	h := heap.NewInMemory()
	err := heap.WithArray(ctx, h, 3, func(i int) movie.Movie { return movie.New("Jaws", 1975+i) },
		func(movies *heap.Array[movie.Movie]) error {
			require.NoError(t, movies.Update(0, func(m *movie.Movie) error {
				m.Title = "Jaws 2"
				return nil
			}))
			first, err := movies.At(0)
			require.NoError(t, err)
			assert.Equal(t, movie.New("Jaws 2", 1975), first)

			var kept []*movie.Movie
			require.NoError(t, movies.Each(func(i int, m *movie.Movie) error {
				m.Year += 10
				kept = append(kept, m)
				return nil
			}))
			for _, m := range kept {
				m.Year = 0
			}
			for i := 0; i < movies.Len(); i++ {
				m, err := movies.At(i)
				require.NoError(t, err)
				assert.Equal(t, 1985+i, m.Year)
			}

			errStop := errors.New("stop")
			visited := 0
			err = movies.Each(func(i int, m *movie.Movie) error {
				visited++
				if i == 1 {
					return errStop
				}
				return nil
			})
			assert.ErrorIs(t, err, errStop)
			assert.Equal(t, 2, visited)
			return nil
		})
	require.NoError(t, err)
}

func TestCursor_Released(t *testing.T) {
	ctx := context.Background()
	h := heap.NewInMemory()
	movies, err := heap.AllocArray(ctx, h, 2, func(i int) movie.Movie { return movie.New("Jaws", 1978) })
	require.NoError(t, err)

	c := movies.Cursor()
	require.True(t, c.Next())
	require.NoError(t, movies.Release(ctx))

	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), heap.ErrReleased)
}

func TestWithArray_ReleasesOnError(t *testing.T) {
	backends(t, func(t *testing.T, h *heap.Heap) {
		ctx := context.Background()
		var leaked *heap.Array[movie.Movie]
		err := heap.WithArray(ctx, h, 3, func(i int) movie.Movie { return movie.New("Alien", 1987) },
			func(movies *heap.Array[movie.Movie]) error {
				leaked = movies
				_, err := movies.At(5)
				return err
			})
		assert.ErrorIs(t, err, heap.ErrOutOfRange)

		_, err = leaked.At(0)
		assert.ErrorIs(t, err, heap.ErrReleased)
		assert.ErrorIs(t, leaked.Set(0, movie.New("Aliens", 1986)), heap.ErrReleased)
		requireStats(t, h, heap.Stats{Allocated: 1, Released: 1})
	})
}
