package ban

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/metrics"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:banned:"
	DailyBanLogKey  = "ratelimit:banlog:daily"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Store persists strike counters, active bans and the ban log.
type Store interface {
	IncrStrikes(ctx context.Context, target string, window time.Duration) (int, error)
	SetBan(ctx context.Context, target string, d time.Duration) error
	IsBanned(ctx context.Context, target string) (bool, error)
	AppendLog(ctx context.Context, entry BanLogEntry) error
	DrainLog(ctx context.Context) ([]BanLogEntry, error)
}

// Service bans a client once it collects maxStrikes rate-limit violations
// within banFor.
type Service struct {
	store      Store
	maxStrikes int
	banFor     time.Duration
	now        func() time.Time
}

func NewService(store Store, maxStrikes int, banFor time.Duration) *Service {
	if maxStrikes < 1 {
		maxStrikes = 1
	}
	return &Service{
		store:      store,
		maxStrikes: maxStrikes,
		banFor:     banFor,
		now:        time.Now,
	}
}

// Strike records a violation and reports whether target is now banned.
func (s *Service) Strike(ctx context.Context, target, route string) (bool, error) {
	strikes, err := s.store.IncrStrikes(ctx, target, s.banFor)
	if err != nil {
		return false, fmt.Errorf("could not record strike: %w", err)
	}
	if strikes < s.maxStrikes {
		return false, nil
	}

	if err := s.store.SetBan(ctx, target, s.banFor); err != nil {
		return false, fmt.Errorf("could not ban %s: %w", target, err)
	}
	metrics.Bans.Inc()
	log.Printf("⛔ banned %s on %s after %d strikes", target, route, strikes)

	entry := BanLogEntry{Target: target, Route: route, Strikes: strikes, Time: s.now()}
	if err := s.store.AppendLog(ctx, entry); err != nil {
		log.Printf("could not log ban for %s: %v", target, err)
	}
	return true, nil
}

func (s *Service) IsBanned(ctx context.Context, target string) (bool, error) {
	return s.store.IsBanned(ctx, target)
}

// StartDailyBanSummary logs a summary of the ban log shortly before midnight
// every day until ctx is done.
func (s *Service) StartDailyBanSummary(ctx context.Context) {
	for {
		now := s.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		summary, err := s.DailyBanSummary(ctx)
		if err != nil {
			log.Printf("❌ could not build daily ban summary: %v", err)
			continue
		}
		if summary != "" {
			log.Print(summary)
		}
	}
}

// DailyBanSummary drains the ban log and renders it. It returns "" when
// nobody was banned.
func (s *Service) DailyBanSummary(ctx context.Context) (string, error) {
	logs, err := s.store.DrainLog(ctx)
	if err != nil {
		return "", err
	}
	if len(logs) == 0 {
		return "", nil
	}

	routeCounts := make(map[string]int)
	targetCounts := make(map[string]int)
	for _, entry := range logs {
		routeCounts[entry.Route]++
		targetCounts[entry.Target]++
	}

	var sb strings.Builder
	sb.WriteString("📊 Daily Ban Summary\n")
	sb.WriteString(fmt.Sprintf("Total bans: %d\n", len(logs)))

	sb.WriteString("By route:\n")
	for _, route := range sortedKeys(routeCounts) {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", route, routeCounts[route]))
	}

	sb.WriteString("By client:\n")
	for _, target := range sortedKeys(targetCounts) {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", target, targetCounts[target]))
	}

	sb.WriteString("Full log:\n")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("  %s on %s (%d strikes) at %s\n",
			entry.Target, entry.Route, entry.Strikes, entry.Time.Format(time.RFC822)))
	}
	return sb.String(), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
