package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	redispool "github.com/Temutjin2k/mileage-report/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/fortytw2/leaktest"
	"github.com/google/uuid"
)

func TestReportCache(t *testing.T) {
	defer leaktest.Check(t)()

	s := miniredis.NewMiniRedis()
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	pool := redispool.NewPool(redispool.PoolDial(redispool.AddrDialer(s.Addr(), "", 0)))
	defer pool.Close()

	cache := NewReportCache(pool, time.Hour)
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		got, err := cache.Get(ctx, "absent")
		if err != nil || got != nil {
			t.Fatalf("got %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("hit after set", func(t *testing.T) {
		report := &models.Report{
			ID:            uuid.New(),
			GeneratedAt:   time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			InputHash:     "abc",
			Trips:         []models.Trip{{Date: "2024-01-05", From: "Main Library", To: "Holland Branch", Distance: 12.3}},
			TotalDistance: 12.3,
			EntryCount:    2,
		}
		if err := cache.Set(ctx, report); err != nil {
			t.Fatal(err)
		}

		got, err := cache.Get(ctx, "abc")
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.ID != report.ID || len(got.Trips) != 1 || got.Trips[0].Distance != 12.3 {
			t.Fatalf("unexpected cached report %+v", got)
		}
	})

	t.Run("expires with ttl", func(t *testing.T) {
		if err := cache.Set(ctx, &models.Report{ID: uuid.New(), InputHash: "ttl"}); err != nil {
			t.Fatal(err)
		}
		s.FastForward(2 * time.Hour)

		got, err := cache.Get(ctx, "ttl")
		if err != nil || got != nil {
			t.Fatalf("got %v, %v; want expired", got, err)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		if err := s.Set(keyPrefix+"bad", "{not json"); err != nil {
			t.Fatal(err)
		}
		if _, err := cache.Get(ctx, "bad"); err == nil {
			t.Fatal("expected a decode error")
		}
	})
}
