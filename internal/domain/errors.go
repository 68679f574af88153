package domain

import "errors"

var (
	// ErrInsufficientHistory is returned when fewer than the minimum
	// number of movies are available to build a taste profile. The
	// boundary layer maps it to a "need more data" response.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrMovieNotFound is returned when the metadata provider has no
	// record for a requested movie.
	ErrMovieNotFound = errors.New("movie not found")
)
