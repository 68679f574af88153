package domain

// HistoryEntry is a movie in the user's collection, annotated with the
// user's own rating (0-10 scale) and the date they watched it. The
// provider rating lives on the embedded Movie.
type HistoryEntry struct {
	Movie
	UserRating float64 `json:"user_rating,omitempty"`
	WatchDate  string  `json:"watch_date,omitempty"`
}
