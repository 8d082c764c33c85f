// Package demo runs the struct semantics walkthrough: a Movie record passed by
// reference, by value and by pointer, a fixed array of movies, and heap-owned
// movies released through scoped ownership.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/reuben-baek/go-structs/heap"
	"github.com/reuben-baek/go-structs/movie"
	"github.com/sirupsen/logrus"
)

const top = 3

type Runner struct {
	Out  io.Writer
	In   io.Reader
	Heap *heap.Heap
	// Partial leaves the last array element's year unset in step 5.
	Partial bool
}

func (r *Runner) Run(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(ctx context.Context, s *state) error
	}{
		{"stack", r.stack},
		{"input", r.input},
		{"by-value", r.byValue},
		{"by-pointer", r.byPointer},
		{"array", r.array},
		{"heap-single", r.heapSingle},
		{"heap-array", r.heapArray},
		{"heap-cursor", r.heapCursor},
	}

	fmt.Fprintln(r.Out, "Structs demo")
	s := &state{}
	for i, step := range steps {
		logrus.WithFields(logrus.Fields{"step": i + 1, "name": step.name}).Debug("demo: running step")
		if err := step.run(ctx, s); err != nil {
			return fmt.Errorf("step %d %s: %w", i+1, step.name, err)
		}
	}
	fmt.Fprintln(r.Out, "End of struct samples. - Goodbye!")

	stats, err := r.Heap.Stats(ctx)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"allocated": stats.Allocated,
		"released":  stats.Released,
		"live":      stats.Live,
	}).Info("demo: finished")
	return nil
}

type state struct {
	favourite movie.Movie
	yours     movie.Movie
	top       [top]movie.Movie
}

func (r *Runner) stack(_ context.Context, s *state) error {
	s.favourite = movie.New("2001 A Space Odyssey", 1968)
	fmt.Fprintln(r.Out, "My favorite movie is:")
	movie.PrintByReference(r.Out, s.favourite.View())
	return nil
}

func (r *Runner) input(_ context.Context, s *state) error {
	fmt.Fprintln(r.Out, "What is your favourite movie?")
	yours, err := movie.NewReader(r.In).ReadMovie(r.Out)
	if err != nil {
		return err
	}
	s.yours = yours
	fmt.Fprintln(r.Out, "And your favourite movie is:")
	movie.PrintByReference(r.Out, s.yours.View())
	return nil
}

func (r *Runner) byValue(_ context.Context, s *state) error {
	fmt.Fprintln(r.Out, "Demonstrating pass-by-value")
	movie.PrintByValue(r.Out, s.favourite)
	movie.PrintByValue(r.Out, s.favourite)
	fmt.Fprintf(r.Out, "... still %s after both calls\n", &s.favourite)
	return nil
}

func (r *Runner) byPointer(_ context.Context, s *state) error {
	fmt.Fprintln(r.Out, "Demonstrating pass-by-pointer")
	if err := movie.PrintByPointer(r.Out, &s.favourite); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "... now %s\n", &s.favourite)
	return nil
}

func (r *Runner) array(_ context.Context, s *state) error {
	s.top = [top]movie.Movie{
		movie.New("Jaws", 1978),
		movie.New("Alien", 1987),
		movie.New("Rug Rats", 1995),
	}
	if r.Partial {
		s.top[2] = movie.Movie{Title: "Rug Rats"}
	}
	fmt.Fprintln(r.Out, "Demo: Array of struct")
	movie.PrintAll(r.Out, s.top[:])
	return nil
}

func (r *Runner) heapSingle(ctx context.Context, _ *state) error {
	fmt.Fprintln(r.Out, "\nDynamically allocated struct")
	return heap.WithBox(ctx, r.Heap, movie.New("Baby Driver", 2016), func(m *movie.Movie) error {
		fmt.Fprintln(r.Out, m.Title)
		fmt.Fprintln(r.Out, m.Year)
		return nil
	})
}

func heapMovies(i int) movie.Movie {
	return [top]movie.Movie{
		movie.New("Judge Dredd", 2012),
		movie.New("Midnight Express", 1987),
		movie.New("Independence Day", 2004),
	}[i]
}

func (r *Runner) heapArray(ctx context.Context, _ *state) error {
	fmt.Fprintln(r.Out, "\nDynamically allocated array of struct")
	return heap.WithArray(ctx, r.Heap, top, heapMovies, func(movies *heap.Array[movie.Movie]) error {
		second, err := movies.At(1)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "movies[1]:")
		fmt.Fprintf(r.Out, "movies[1].title = %s\n", second.Title)
		fmt.Fprintf(r.Out, "movies[1].year  = %d\n", second.Year)

		fmt.Fprintln(r.Out, "\nAll elements in the movies array:")
		for i := 0; i < movies.Len(); i++ {
			m, err := movies.At(i)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.Out, "movies[%d] title=%s, year=%d.\n", i, m.Title, m.Year)
		}
		return nil
	})
}

func (r *Runner) heapCursor(ctx context.Context, _ *state) error {
	fmt.Fprintln(r.Out, "\nAdvance a cursor to access struct array elements.")
	return heap.WithArray(ctx, r.Heap, top, heapMovies, func(movies *heap.Array[movie.Movie]) error {
		c := movies.Cursor()
		for c.Next() {
			fmt.Fprintf(r.Out, "Title:%s\n", c.Value().Title)
			fmt.Fprintf(r.Out, "Year:%d\n", c.Value().Year)
		}
		return c.Err()
	})
}
