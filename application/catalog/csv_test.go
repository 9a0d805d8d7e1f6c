package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	appupload "bookstore/application/upload"
	"bookstore/infrastructure/persistence/memory"
	"bookstore/pkg/clock"
)

type stubFetcher struct {
	data        []byte
	contentType string
	fetched     []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.fetched = append(f.fetched, url)
	return f.data, f.contentType, nil
}

func newCatalogService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewService(
		memory.NewBookRepository(store),
		memory.NewAuthorRepository(store),
		appupload.NewService(memory.NewUploadRepository(store), clk),
		memory.NewUnitOfWork(store),
		clk,
	)
}

func TestImport(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"title,authors,year,price,available",
		"The Go Programming Language,Alan Donovan;Brian Kernighan,2015,39.99,10",
		"Learning Go,Jon Bodner,2021,49.99,5",
	}, "\n")

	result, err := svc.Import(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if len(result.Failures) != 0 {
		t.Errorf("Failures = %+v", result.Failures)
	}

	books, total, err := svc.ListBooks(ctx, ListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	first := books[0]
	if first.Title != "Learning Go" || first.Price != "49.99" || first.Available != 5 {
		t.Errorf("book = %+v", first)
	}
	second := books[1]
	if len(second.Authors) != 2 || second.Authors[0].Name != "Alan Donovan" {
		t.Errorf("authors = %+v", second.Authors)
	}
}

func TestImportReportsBadRows(t *testing.T) {
	svc := newCatalogService(t)

	input := strings.Join([]string{
		"title,authors,year,price,available",
		"Good Book,Some Author,2020,19.99,3",
		",Some Author,2020,19.99,3",
		"No Price,Some Author,2020,not-a-price,3",
		"Short Row,Some Author",
		"Bad Year,Some Author,twenty,19.99,3",
	}, "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	wantLines := []int{3, 4, 5, 6}
	if len(result.Failures) != len(wantLines) {
		t.Fatalf("Failures = %+v", result.Failures)
	}
	for i, failure := range result.Failures {
		if failure.Line != wantLines[i] {
			t.Errorf("failure %d: line = %d, want %d (%s)", i, failure.Line, wantLines[i], failure.Reason)
		}
		if failure.Reason == "" {
			t.Errorf("failure %d has no reason", i)
		}
	}
}

func TestImportReusesAuthors(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"First Book,Jane Writer,2019,10.00,1",
		"Second Book,JANE WRITER,2020,12.00,1",
	}, "\n")

	if _, err := svc.Import(ctx, strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	authors, err := svc.ListAuthors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 {
		t.Fatalf("authors = %+v, want a single shared author", authors)
	}
	if authors[0].Name != "Jane Writer" {
		t.Errorf("name = %q, want the first spelling kept", authors[0].Name)
	}
}

func TestImportFetchesCovers(t *testing.T) {
	svc := newCatalogService(t)
	fetcher := &stubFetcher{data: []byte("fake image"), contentType: "image/png"}
	svc.SetCoverFetcher(fetcher)
	ctx := context.Background()

	input := "Covered Book,Some Author,2020,19.99,3,https://example.com/covers/book.png\n"
	result, err := svc.Import(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(fetcher.fetched) != 1 || fetcher.fetched[0] != "https://example.com/covers/book.png" {
		t.Errorf("fetched = %+v", fetcher.fetched)
	}

	books, _, err := svc.ListBooks(ctx, ListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if books[0].CoverID == "" {
		t.Error("expected a cover to be attached")
	}
}
