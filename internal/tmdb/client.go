// Package tmdb is the client for The Movie Database API. It owns all
// provider communication: response caching with TTL, bounded retry
// with exponential backoff, and translation of raw provider records
// into the normalized domain.Movie shape. Every operation degrades to
// an absent result on failure rather than returning an error, so a
// single missing movie never aborts a batch of independent lookups.
package tmdb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lbakerr/cinematch/internal/domain"
)

const (
	searchResultLimit = 10
	maxPopularPages   = 50
	castLimit         = 10
)

type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	CacheTTL     time.Duration
	HTTPTimeout  time.Duration
	MaxRetries   int
}

type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	cache        *responseCache
	maxRetries   int
	retryDelays  []time.Duration
	logger       zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		cache:        newResponseCache(cfg.CacheTTL),
		maxRetries:   cfg.MaxRetries,
		retryDelays:  []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		logger:       logger.With().Str("component", "tmdb").Logger(),
	}
}

// ---------- provider payloads ----------

type movieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int64 `json:"genre_ids"`
	Runtime      int     `json:"runtime"`
	Genres       []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type listResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type creditsResponse struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

// ---------- request dispatch ----------

// get performs a cached, retried GET against the provider. It returns
// the raw payload, or absent on any terminal failure. Only successful
// payloads are cached; retries never apply to a cache hit.
func (c *Client) get(endpoint string, params url.Values) ([]byte, bool) {
	if params == nil {
		params = url.Values{}
	}
	key := cacheKey(endpoint, params)
	if payload, ok := c.cache.get(key); ok {
		c.logger.Debug().Str("endpoint", endpoint).Msg("cache hit")
		return payload, true
	}

	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		payload, outcome := c.dispatch(endpoint, reqURL)
		switch outcome {
		case outcomeOK:
			c.cache.put(key, payload)
			return payload, true
		case outcomeTerminal:
			return nil, false
		case outcomeRetryable:
			if attempt < c.maxRetries-1 {
				time.Sleep(c.retryDelay(attempt))
			}
		}
	}

	return nil, false
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeTerminal
	outcomeRetryable
)

func (c *Client) dispatch(endpoint, reqURL string) ([]byte, outcome) {
	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		// Timeouts and transport errors are transient.
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("request failed")
		return nil, outcomeRetryable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var buf json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&buf); err != nil {
			c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("malformed response body")
			return nil, outcomeRetryable
		}
		return buf, outcomeOK
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Error().Str("endpoint", endpoint).Msg("authentication failed, check API key")
		return nil, outcomeTerminal
	case resp.StatusCode == http.StatusBadRequest:
		c.logger.Error().Str("endpoint", endpoint).Msg("malformed request")
		return nil, outcomeTerminal
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Debug().Str("endpoint", endpoint).Msg("resource not found")
		return nil, outcomeTerminal
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn().Str("endpoint", endpoint).Msg("rate limited")
		return nil, outcomeRetryable
	default:
		c.logger.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("provider error")
		return nil, outcomeRetryable
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < len(c.retryDelays) {
		return c.retryDelays[attempt]
	}
	return c.retryDelays[len(c.retryDelays)-1]
}

// ---------- operations ----------

// Search looks up movies by title, optionally filtered by release
// year (0 means no filter). Results are ranked by popularity, with a
// flat bonus for an exact year match, and truncated to the top 10.
func (c *Client) Search(title string, year int) []domain.Movie {
	params := url.Values{}
	params.Set("query", title)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	payload, ok := c.get("search/movie", params)
	if !ok {
		return nil
	}

	var resp listResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		c.logger.Error().Err(err).Msg("decode search response")
		return nil
	}

	results := resp.Results
	if year > 0 {
		relevance := func(m movieResult) float64 {
			score := m.Popularity
			if releaseYear(m.ReleaseDate) == year {
				score += 100
			}
			return score
		}
		sort.SliceStable(results, func(i, j int) bool {
			return relevance(results[i]) > relevance(results[j])
		})
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Popularity > results[j].Popularity
		})
	}

	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}

	matches := make([]domain.Movie, 0, len(results))
	for _, m := range results {
		matches = append(matches, domain.Movie{
			TMDBID:     m.ID,
			Title:      m.Title,
			Year:       releaseYear(m.ReleaseDate),
			Overview:   m.Overview,
			PosterPath: c.imageURL(m.PosterPath),
			Popularity: m.Popularity,
		})
	}
	return matches
}

// GetDetails fetches the full record for a movie: core fields merged
// with the credit list (top 10 cast, first crew member whose job is
// "Director"). Returns nil when the movie is absent or the provider
// is unavailable.
func (c *Client) GetDetails(tmdbID int64) *domain.Movie {
	payload, ok := c.get(fmt.Sprintf("movie/%d", tmdbID), nil)
	if !ok {
		return nil
	}

	var m movieResult
	if err := json.Unmarshal(payload, &m); err != nil {
		c.logger.Error().Err(err).Int64("tmdb_id", tmdbID).Msg("decode movie details")
		return nil
	}

	movie := &domain.Movie{
		TMDBID:       m.ID,
		Title:        m.Title,
		Year:         releaseYear(m.ReleaseDate),
		Overview:     m.Overview,
		Runtime:      m.Runtime,
		Rating:       m.VoteAverage,
		Popularity:   m.Popularity,
		PosterPath:   c.imageURL(m.PosterPath),
		BackdropPath: c.imageURL(m.BackdropPath),
	}
	for _, g := range m.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}

	// Credits are a separate logical request; a miss leaves cast and
	// director absent rather than failing the whole fetch.
	if payload, ok := c.get(fmt.Sprintf("movie/%d/credits", tmdbID), nil); ok {
		var credits creditsResponse
		if err := json.Unmarshal(payload, &credits); err == nil {
			for i, actor := range credits.Cast {
				if i >= castLimit {
					break
				}
				movie.Cast = append(movie.Cast, domain.CastMember{
					Name:      actor.Name,
					Character: actor.Character,
				})
			}
			for _, crew := range credits.Crew {
				if crew.Job == "Director" {
					movie.Director = crew.Name
					break
				}
			}
		} else {
			c.logger.Warn().Err(err).Int64("tmdb_id", tmdbID).Msg("decode credits")
		}
	}

	return movie
}

// GetPopularPool paginates the provider's popularity-ordered listing
// until limit records are collected or pages run out. Entries keep
// raw genre identifiers; name enrichment is deferred to detail fetch.
func (c *Client) GetPopularPool(limit int) []domain.Movie {
	var pool []domain.Movie

	for page := 1; page <= maxPopularPages; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))

		payload, ok := c.get("movie/popular", params)
		if !ok {
			break
		}

		var resp listResponse
		if err := json.Unmarshal(payload, &resp); err != nil {
			c.logger.Error().Err(err).Int("page", page).Msg("decode popular page")
			break
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, m := range resp.Results {
			pool = append(pool, domain.Movie{
				TMDBID:     m.ID,
				Title:      m.Title,
				Year:       releaseYear(m.ReleaseDate),
				GenreIDs:   m.GenreIDs,
				Overview:   m.Overview,
				Rating:     m.VoteAverage,
				Popularity: m.Popularity,
				PosterPath: c.imageURL(m.PosterPath),
			})
			if len(pool) >= limit {
				return pool
			}
		}
	}

	return pool
}

// releaseYear parses the year from the leading four characters of a
// provider release-date string; 0 when missing or unparsable.
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// imageURL qualifies a raw provider image path, or stays absent.
func (c *Client) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + path
}
