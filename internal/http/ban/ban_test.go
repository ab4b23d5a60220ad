package ban

import (
	"context"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestService(maxStrikes int, banFor time.Duration) (*Service, *MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.now
	svc := NewService(store, maxStrikes, banFor)
	svc.now = clock.now
	return svc, store, clock
}

func TestStrike_BansAfterMaxStrikes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(3, time.Minute)

	for i := 1; i < 3; i++ {
		banned, err := svc.Strike(ctx, "1.2.3.4", "/candy")
		if err != nil {
			t.Fatalf("strike %d: unexpected error: %v", i, err)
		}
		if banned {
			t.Fatalf("strike %d: expected not banned yet", i)
		}
	}

	banned, err := svc.Strike(ctx, "1.2.3.4", "/candy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !banned {
		t.Fatal("expected ban on the third strike")
	}

	if ok, _ := svc.IsBanned(ctx, "1.2.3.4"); !ok {
		t.Error("expected 1.2.3.4 to be banned")
	}
	if ok, _ := svc.IsBanned(ctx, "5.6.7.8"); ok {
		t.Error("expected 5.6.7.8 not to be banned")
	}
}

func TestBanExpires(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(1, time.Minute)

	if banned, _ := svc.Strike(ctx, "client", "/refresh"); !banned {
		t.Fatal("expected immediate ban with max strikes 1")
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if ok, _ := svc.IsBanned(ctx, "client"); ok {
		t.Error("expected ban to expire")
	}
}

func TestStrikesWindowResets(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(2, time.Minute)

	svc.Strike(ctx, "client", "/candy")
	clock.t = clock.t.Add(time.Hour)

	if banned, _ := svc.Strike(ctx, "client", "/candy"); banned {
		t.Error("expected old strikes to be forgotten after the window")
	}
}

func TestDailyBanSummary(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(1, time.Minute)

	svc.Strike(ctx, "a", "/candy")
	svc.Strike(ctx, "b", "/candy")
	svc.Strike(ctx, "a", "/refresh")

	summary, err := svc.DailyBanSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Total bans: 3", "/candy: 2", "/refresh: 1", "a: 2", "b: 1"} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, summary)
		}
	}

	if logs, _ := store.DrainLog(ctx); len(logs) != 0 {
		t.Errorf("expected log to be drained, got %d entries", len(logs))
	}

	summary, _ = svc.DailyBanSummary(ctx)
	if summary != "" {
		t.Errorf("expected empty summary, got %q", summary)
	}
}

func TestStartDailyBanSummary_StopsOnCancel(t *testing.T) {
	svc, _, _ := newTestService(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.StartDailyBanSummary(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected summary loop to stop after cancel")
	}
}
