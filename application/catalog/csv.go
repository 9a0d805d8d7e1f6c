package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"bookstore/pkg/logger"

	"go.uber.org/zap"
)

// Import reads books from CSV and creates them one by one. The expected
// columns are title, authors (semicolon separated), year, price, available,
// and an optional cover URL. A header row is detected and skipped. A bad
// row is reported and skipped; it never aborts the rest of the file.
func (s *Service) Import(ctx context.Context, input io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.fail(line, err.Error())
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}

		req, coverURL, err := parseImportRecord(record)
		if err != nil {
			result.fail(line, err.Error())
			continue
		}

		book, err := s.CreateBook(ctx, req)
		if err != nil {
			result.fail(line, err.Error())
			continue
		}

		if coverURL != "" {
			if err := s.importCover(ctx, book.ID, coverURL); err != nil {
				logger.Warn("Failed to import cover",
					zap.String("book_id", book.ID),
					zap.String("url", coverURL),
					zap.Error(err),
				)
			}
		}
		result.Imported++
	}
	return result, nil
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Imported int             `json:"imported"`
	Failures []ImportFailure `json:"failures,omitempty"`
}

// ImportFailure reports one rejected CSV row.
type ImportFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (r *ImportResult) fail(line int, reason string) {
	r.Failures = append(r.Failures, ImportFailure{Line: line, Reason: reason})
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "title")
}

func parseImportRecord(record []string) (BookRequest, string, error) {
	if len(record) < 5 {
		return BookRequest{}, "", fmt.Errorf("expected at least 5 columns, got %d", len(record))
	}

	title := strings.TrimSpace(record[0])
	if title == "" {
		return BookRequest{}, "", fmt.Errorf("title is empty")
	}

	authors := make([]string, 0)
	for _, name := range strings.Split(record[1], ";") {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) == 0 {
		return BookRequest{}, "", fmt.Errorf("no authors")
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return BookRequest{}, "", fmt.Errorf("invalid year %q", record[2])
	}

	available, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	if err != nil || available < 0 {
		return BookRequest{}, "", fmt.Errorf("invalid available count %q", record[4])
	}

	coverURL := ""
	if len(record) > 5 {
		coverURL = strings.TrimSpace(record[5])
	}

	return BookRequest{
		Title:     title,
		Year:      year,
		Price:     strings.TrimSpace(record[3]),
		Available: available,
		Authors:   authors,
	}, coverURL, nil
}

// CoverFetcher downloads cover images referenced by CSV imports.
type CoverFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// SetCoverFetcher overrides the default HTTP fetcher, mainly for tests.
func (s *Service) SetCoverFetcher(fetcher CoverFetcher) {
	s.coverFetcher = fetcher
}

func (s *Service) importCover(ctx context.Context, bookID, url string) error {
	fetcher := s.coverFetcher
	if fetcher == nil {
		fetcher = httpCoverFetcher{client: &http.Client{Timeout: 15 * time.Second}}
	}
	data, contentType, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	_, err = s.UploadCover(ctx, bookID, path.Base(url), contentType, data)
	return err
}

type httpCoverFetcher struct {
	client *http.Client
}

func (f httpCoverFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
