package engine

// genreNames maps TMDb genre identifiers to canonical names. The
// taxonomy is fixed; candidates carry raw ids until detail fetch.
var genreNames = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// resolveGenres converts genre ids to names, dropping unmapped ids.
func resolveGenres(genreIDs []int64) []string {
	var names []string
	for _, id := range genreIDs {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
