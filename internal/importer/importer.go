// Package importer parses watch-history CSV exports (TV Time and
// Letterboxd formats) and resolves each row against the metadata
// provider into full history entries.
package importer

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lbakerr/cinematch/internal/domain"
)

// MetadataClient is the subset of the tmdb client the importer needs.
type MetadataClient interface {
	Search(title string, year int) []domain.Movie
	GetDetails(tmdbID int64) *domain.Movie
}

type format string

const (
	formatTVTime     format = "tv_time"
	formatLetterboxd format = "letterboxd"
)

// Result reports an import: resolved entries plus per-row errors for
// rows that could not be parsed or matched. Row errors do not fail
// the import as a whole.
type Result struct {
	Count  int                   `json:"count"`
	Movies []domain.HistoryEntry `json:"movies"`
	Errors []string              `json:"errors,omitempty"`
}

// rowData is a parsed CSV row before provider resolution.
type rowData struct {
	title     string
	year      int
	rating    float64
	watchDate string
}

type Importer struct {
	client      MetadataClient
	concurrency int
	logger      zerolog.Logger
}

func New(client MetadataClient, concurrency int, logger zerolog.Logger) *Importer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Importer{
		client:      client,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "importer").Logger(),
	}
}

// Import parses the CSV content, auto-detecting the format from the
// header row, and resolves the rows concurrently against the provider.
func (i *Importer) Import(content string) (*Result, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invalid CSV file: no headers found")
	}

	headers := records[0]
	csvFormat, ok := detectFormat(headers)
	if !ok {
		return nil, fmt.Errorf("unsupported CSV format, expected TV Time or Letterboxd, found headers: %s",
			strings.Join(headers, ", "))
	}
	i.logger.Info().Str("format", string(csvFormat)).Int("rows", len(records)-1).Msg("detected CSV format")

	var rows []rowData
	var errs []string
	for idx, record := range records[1:] {
		line := idx + 2 // header is line 1
		row, err := parseRow(headers, record, csvFormat)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid movie entries found in CSV")
	}

	movies, lookupErrs := i.resolveAll(rows)
	errs = append(errs, lookupErrs...)

	return &Result{
		Count:  len(movies),
		Movies: movies,
		Errors: errs,
	}, nil
}

func detectFormat(headers []string) (format, bool) {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[strings.ToLower(strings.TrimSpace(h))] = true
	}

	if have["movie name"] && have["rating"] {
		return formatTVTime, true
	}
	if have["name"] && have["year"] && have["rating"] {
		return formatLetterboxd, true
	}
	return "", false
}

func parseRow(headers, record []string, csvFormat format) (rowData, error) {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(record) {
			fields[strings.ToLower(strings.TrimSpace(h))] = strings.TrimSpace(record[i])
		}
	}

	var row rowData
	switch csvFormat {
	case formatTVTime:
		row.title = fields["movie name"]
		row.watchDate = parseWatchDate(fields["date"])
	case formatLetterboxd:
		row.title = fields["name"]
		row.watchDate = parseWatchDate(fields["watched date"])
	}
	if row.title == "" {
		return rowData{}, fmt.Errorf("missing movie title")
	}

	if y, err := strconv.Atoi(fields["year"]); err == nil {
		row.year = y
	}

	// Both exports rate on a 0-5 star scale; double to 0-10.
	if r, err := strconv.ParseFloat(fields["rating"], 64); err == nil {
		row.rating = r * 2
	}

	return row, nil
}

func parseWatchDate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

// resolveAll looks rows up on the provider with a bounded worker pool.
func (i *Importer) resolveAll(rows []rowData) ([]domain.HistoryEntry, []string) {
	resolved := make([]*domain.HistoryEntry, len(rows))
	failures := make([]string, len(rows))

	var wg sync.WaitGroup
	sem := make(chan struct{}, i.concurrency)

	for idx, row := range rows {
		wg.Add(1)
		go func(idx int, row rowData) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entry := i.resolve(row)
			if entry == nil {
				failures[idx] = fmt.Sprintf("Movie not found on TMDb: %s", row.title)
				return
			}
			resolved[idx] = entry
		}(idx, row)
	}
	wg.Wait()

	var movies []domain.HistoryEntry
	var errs []string
	for idx := range rows {
		if resolved[idx] != nil {
			movies = append(movies, *resolved[idx])
		} else {
			errs = append(errs, failures[idx])
		}
	}
	return movies, errs
}

// resolve searches for the row's title, takes the top match, and
// fetches its full details.
func (i *Importer) resolve(row rowData) *domain.HistoryEntry {
	matches := i.client.Search(row.title, row.year)
	if len(matches) == 0 {
		i.logger.Warn().Str("title", row.title).Msg("no search results")
		return nil
	}

	details := i.client.GetDetails(matches[0].TMDBID)
	if details == nil {
		return nil
	}

	return &domain.HistoryEntry{
		Movie:      *details,
		UserRating: row.rating,
		WatchDate:  row.watchDate,
	}
}
