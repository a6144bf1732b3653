package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/internal/service/mileage"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

type fakeCache struct {
	mu      sync.Mutex
	reports map[string]*models.Report
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{reports: make(map[string]*models.Report)}
}

func (c *fakeCache) Get(_ context.Context, hash string) (*models.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.reports[hash], nil
}

func (c *fakeCache) Set(_ context.Context, r *models.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.reports[r.InputHash] = r
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []models.ReportGeneratedMessage
	err  error
}

func (p *fakePublisher) PublishReportGenerated(_ context.Context, msg models.ReportGeneratedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

type fakeFeed struct {
	mu   sync.Mutex
	msgs []any
}

func (f *fakeFeed) Broadcast(_ context.Context, msg any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return 1
}

func testService(t *testing.T, cache Cache, pub Publisher, feed Feed) *Service {
	t.Helper()

	dir, err := models.NewBranchDirectory([]models.Branch{
		{Name: "Main Library", Code: "MAIN"},
		{Name: "Holland Branch", Code: "HOLL"},
	})
	if err != nil {
		t.Fatal(err)
	}
	chart, err := models.NewDistanceChart([]string{"MAIN", "HOLL"}, []models.ChartRow{
		{Code: "MAIN", Distances: []float64{0, 12.3}},
		{Code: "HOLL", Distances: []float64{12.3, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}

	log := logger.NewWithWriter(io.Discard, "test", logger.LevelError)
	return NewService("test", mileage.NewDeriver(dir, chart), cache, pub, feed, log)
}

func entryText(branch, timeIn, timeOut, duration string) string {
	return strings.Join([]string{
		branch, timeIn, "Jan 5, 2024", "CST", "-", timeOut, "Jan 5, 2024", "CST", duration, "", "1.0 miles",
	}, "\n")
}

var timesheet = strings.Join([]string{
	entryText("Main Library", "9:00 AM", "11:00 AM", "2:00"),
	entryText("Holland Branch", "1:00 PM", "3:00 PM", "2:00"),
}, "\n")

func TestGenerate_EndToEnd(t *testing.T) {
	pub, feed := &fakePublisher{}, &fakeFeed{}
	s := testService(t, nil, pub, feed)

	ctx := wrap.WithRequestID(context.Background(), "req-42")
	report, err := s.Generate(ctx, timesheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Wait()

	want := models.Trip{Date: "2024-01-05", From: "Main Library", To: "Holland Branch", Distance: 12.3}
	if len(report.Trips) != 1 || report.Trips[0] != want {
		t.Fatalf("trips = %+v", report.Trips)
	}
	if report.TotalDistance != 12.3 || report.EntryCount != 2 {
		t.Fatalf("totals = %+v", report)
	}

	if len(pub.msgs) != 1 || pub.msgs[0].ReportID != report.ID || pub.msgs[0].CorrelationID != "req-42" {
		t.Fatalf("published %+v", pub.msgs)
	}
	if len(feed.msgs) != 1 {
		t.Fatalf("broadcast %d messages", len(feed.msgs))
	}
	if m, ok := feed.msgs[0].(models.ReportFeedMessage); !ok || m.Type != models.FeedReportGenerated || m.Report.TripCount != 1 {
		t.Fatalf("unexpected feed message %+v", feed.msgs[0])
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	s := testService(t, nil, nil, nil)

	first, err := s.Generate(context.Background(), timesheet)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Generate(context.Background(), timesheet)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Trips) != len(second.Trips) || first.Trips[0] != second.Trips[0] {
		t.Fatalf("same input produced different trips: %+v vs %+v", first.Trips, second.Trips)
	}
	if first.InputHash != second.InputHash {
		t.Fatal("same input produced different hashes")
	}
}

func TestGenerate_UsesCache(t *testing.T) {
	cache, pub := newFakeCache(), &fakePublisher{}
	s := testService(t, cache, pub, nil)

	first, err := s.Generate(context.Background(), timesheet)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Generate(context.Background(), timesheet)
	if err != nil {
		t.Fatal(err)
	}
	s.Wait()

	if first.ID != second.ID {
		t.Fatal("second request was not served from cache")
	}
	if cache.sets != 1 || len(pub.msgs) != 1 {
		t.Fatalf("sets=%d published=%d, want 1 and 1", cache.sets, len(pub.msgs))
	}
}

func TestGenerate_CacheFailureIsNotFatal(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	s := testService(t, cache, nil, nil)

	if _, err := s.Generate(context.Background(), timesheet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerate_PublishFailureIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	s := testService(t, nil, pub, nil)

	if _, err := s.Generate(context.Background(), timesheet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Wait()
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "  \n\t", types.ErrEmptyInput},
		{"bad date", strings.Replace(timesheet, "Jan 5, 2024", "5 Jan 2024", 1), types.ErrInvalidFormat},
		{"unmapped branch", strings.Replace(timesheet, "Holland Branch", "Moon Branch", 1), types.ErrUnmappedLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			s := testService(t, nil, pub, nil)

			_, err := s.Generate(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			s.Wait()
			if len(pub.msgs) != 0 {
				t.Fatal("failed report must not be published")
			}
		})
	}
}

func TestGenerate_NoTerminalLinesYieldsEmptyReport(t *testing.T) {
	s := testService(t, nil, nil, nil)

	report, err := s.Generate(context.Background(), "Main Library\n9:00 AM\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Trips) != 0 || report.EntryCount != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestEntries(t *testing.T) {
	s := testService(t, nil, nil, nil)

	entries, err := s.Entries(context.Background(), timesheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[1].Branch != "Holland Branch" || entries[0].Duration != "2:00" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	if _, err := s.Entries(context.Background(), ""); !errors.Is(err, types.ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
}
