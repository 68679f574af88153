package domain

// CastMember is a single credited actor on a movie.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// Movie is the normalized record produced by the metadata client.
// Zero values mean the provider did not supply the field (year 0,
// rating 0, empty paths). Records are never mutated after being
// returned.
type Movie struct {
	TMDBID       int64        `json:"tmdb_id"`
	Title        string       `json:"title"`
	Year         int          `json:"year,omitempty"`
	Genres       []string     `json:"genres,omitempty"`
	GenreIDs     []int64      `json:"genre_ids,omitempty"`
	Overview     string       `json:"overview,omitempty"`
	Rating       float64      `json:"rating,omitempty"`
	Popularity   float64      `json:"popularity,omitempty"`
	PosterPath   string       `json:"poster_path,omitempty"`
	BackdropPath string       `json:"backdrop_path,omitempty"`
	Runtime      int          `json:"runtime,omitempty"`
	Cast         []CastMember `json:"cast,omitempty"`
	Director     string       `json:"director,omitempty"`
}
