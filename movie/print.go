package movie

import (
	"errors"
	"fmt"
	"io"
)

var ErrNilMovie = errors.New("movie: nil movie")

func Format(title string, year int) string {
	return fmt.Sprintf("%s (%d)", title, year)
}

// PrintByReference prints through a read-only loan.
func PrintByReference(w io.Writer, m View) {
	fmt.Fprintln(w, m.String())
}

// PrintByValue prints its own copy of m, then overwrites that copy.
// The caller's Movie is never touched.
func PrintByValue(w io.Writer, m Movie) {
	fmt.Fprintf(w, "... in PrintByValue() Title:%s Year: %d\n", m.Title, m.Year)
	m.Title = "Flash Gordon"
	m.Year = 1980
}

// PrintByPointer prints m and sets its year to 1999 in place.
func PrintByPointer(w io.Writer, m *Movie) error {
	if m == nil {
		return ErrNilMovie
	}
	fmt.Fprintln(w, "... in PrintByPointer()")
	fmt.Fprintln(w, m.String())
	m.Year = 1999
	return nil
}

// PrintAll prints one "i: title, year" line per movie.
func PrintAll(w io.Writer, movies []Movie) {
	for i := range movies {
		fmt.Fprintf(w, "%d: %s, %d\n", i, movies[i].Title, movies[i].Year)
	}
}
