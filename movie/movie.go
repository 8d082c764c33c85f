package movie

type Movie struct {
	Title string
	Year  int
}

// New builds a Movie with every field supplied.
func New(title string, year int) Movie {
	return Movie{Title: title, Year: year}
}

// View lends m read-only. The loan shares m's storage, so it sees later writes.
func (m *Movie) View() View {
	return View{movie: m}
}

func (m *Movie) String() string {
	return m.View().String()
}

// View is a read-only loan of a Movie. Only the movie package can reach the
// Movie behind it, so holders have nothing to write through.
type View struct {
	movie *Movie
}

func (v View) Title() string {
	if v.movie == nil {
		return ""
	}
	return v.movie.Title
}

func (v View) Year() int {
	if v.movie == nil {
		return 0
	}
	return v.movie.Year
}

// String renders the movie as "title (year)".
func (v View) String() string {
	return Format(v.Title(), v.Year())
}
