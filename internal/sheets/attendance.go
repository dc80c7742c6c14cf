package sheets

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// settingsTab optionally carries the academic year (B1) and the seminar
// tab list (A2:A). When it is missing the configured defaults apply.
const settingsTab = "Settings"

// Snapshot is one immutable load of the whole attendance spreadsheet.
type Snapshot struct {
	AcademicYear string
	Tabs         []string
	Attendance   map[string]map[string]struct{}
	FetchedAt    time.Time
}

// Service serves cached snapshots, refreshing at most once per TTL.
// Recomputation is wholesale and idempotent; the mutex only guards the
// snapshot swap.
type Service struct {
	fetcher     TabFetcher
	defaultTabs []string
	idCol       int
	ttl         time.Duration
	now         func() time.Time

	mu   sync.Mutex
	snap *Snapshot
}

func NewService(fetcher TabFetcher, defaultTabs []string, idColLetter string, ttl time.Duration) *Service {
	return &Service{
		fetcher:     fetcher,
		defaultTabs: defaultTabs,
		idCol:       ColumnIndex(idColLetter),
		ttl:         ttl,
		now:         time.Now,
	}
}

// Snapshot returns the cached snapshot, rebuilding it when expired.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && !s.isExpired(s.now()) {
		return s.snap, nil
	}
	snap, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

func (s *Service) isExpired(now time.Time) bool {
	return now.Sub(s.snap.FetchedAt) >= s.ttl
}

func (s *Service) build(ctx context.Context) (*Snapshot, error) {
	academicYear := ""
	tabs := s.defaultTabs

	settings, err := s.fetcher.FetchTab(ctx, settingsTab)
	switch {
	case err == nil:
		if len(settings) > 0 && len(settings[0]) > 1 {
			academicYear = strings.TrimSpace(settings[0][1])
		}
		var listed []string
		if len(settings) > 1 {
			for _, row := range settings[1:] {
				if len(row) == 0 {
					continue
				}
				if v := strings.TrimSpace(row[0]); v != "" {
					listed = append(listed, v)
				}
			}
		}
		if len(listed) > 0 {
			tabs = listed
		}
	case errors.Is(err, ErrTabNotFound):
		// No Settings tab; keep the configured defaults.
	default:
		return nil, err
	}

	attendance := make(map[string]map[string]struct{}, len(tabs))
	for _, tab := range tabs {
		rows, err := s.fetcher.FetchTab(ctx, tab)
		if errors.Is(err, ErrTabNotFound) {
			attendance[tab] = map[string]struct{}{}
			continue
		}
		if err != nil {
			return nil, err
		}
		ids := make(map[string]struct{}, len(rows))
		for _, row := range rows {
			if len(row) <= s.idCol {
				continue
			}
			v := strings.TrimSpace(row[s.idCol])
			if v == "" || strings.EqualFold(v, "studentid") {
				continue
			}
			ids[v] = struct{}{}
		}
		attendance[tab] = ids
	}

	return &Snapshot{
		AcademicYear: academicYear,
		Tabs:         tabs,
		Attendance:   attendance,
		FetchedAt:    s.now(),
	}, nil
}

// Lookup returns how many seminars the student attended and which ones,
// sorted for display. An unknown ID is simply zero seminars, not an error.
func (snap *Snapshot) Lookup(studentID string) (int, []string) {
	var present []string
	for _, tab := range snap.Tabs {
		if _, ok := snap.Attendance[tab][studentID]; ok {
			present = append(present, tab)
		}
	}
	return len(present), SortSeminars(present)
}

// OverviewRow is one line of the full per-seminar table.
type OverviewRow struct {
	Seminar string
	Present bool
}

// Overview reports the student's presence for every seminar, in display
// order.
func (snap *Snapshot) Overview(studentID string) []OverviewRow {
	rows := make([]OverviewRow, 0, len(snap.Tabs))
	for _, tab := range SortSeminars(snap.Tabs) {
		_, present := snap.Attendance[tab][studentID]
		rows = append(rows, OverviewRow{Seminar: tab, Present: present})
	}
	return rows
}

// SortSeminars orders seminar names numerically when every name parses as
// an integer, lexicographically otherwise. The input is not modified.
func SortSeminars(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)

	numeric := make([]int, len(out))
	allNumeric := true
	for i, name := range out {
		n, err := strconv.Atoi(name)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = n
	}

	if allNumeric {
		sort.Slice(out, func(i, j int) bool {
			a, _ := strconv.Atoi(out[i])
			b, _ := strconv.Atoi(out[j])
			return a < b
		})
	} else {
		sort.Strings(out)
	}
	return out
}
