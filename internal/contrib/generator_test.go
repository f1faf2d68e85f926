package contrib

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/spiffcs/folio/internal/model"
)

// fixedRand returns the same draw every time; IntN always picks the maximum.
type fixedRand struct {
	f float64
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return n - 1 }

var fixedNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestGenerateReproducible(t *testing.T) {
	seed := &model.Profile{Login: "octocat", PublicRepos: 20, CreatedAt: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)}

	a := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2)))).Generate(seed)
	b := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2)))).Generate(seed)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and random source produced different calendars")
	}
	if a.TotalContributions == 0 {
		t.Error("expected some generated activity")
	}
}

func TestGenerateWeekIntegrity(t *testing.T) {
	cal := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(7, 7)))).Generate(nil)

	if len(cal.Weeks) != 52 {
		t.Fatalf("got %d weeks, want 52", len(cal.Weeks))
	}
	wantStart := time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC)
	if !cal.Weeks[0].FirstDay.Equal(wantStart) {
		t.Errorf("first week starts %s, want %s", cal.Weeks[0].FirstDay, wantStart)
	}

	var prev time.Time
	for i, w := range cal.Weeks {
		if len(w.Days) != 7 {
			t.Fatalf("week %d has %d days", i, len(w.Days))
		}
		if !w.FirstDay.Equal(w.Days[0].Date) {
			t.Errorf("week %d FirstDay %s != day 0 %s", i, w.FirstDay, w.Days[0].Date)
		}
		for j, d := range w.Days {
			if d.Weekday != j || int(d.Date.Weekday()) != j {
				t.Errorf("week %d day %d has weekday %d (%s)", i, j, d.Weekday, d.Date.Weekday())
			}
			if !prev.IsZero() && !d.Date.Equal(prev.AddDate(0, 0, 1)) {
				t.Errorf("gap between %s and %s", prev, d.Date)
			}
			prev = d.Date
		}
	}
	if cal.TotalContributions != cal.Sum() {
		t.Errorf("TotalContributions = %d, sum = %d", cal.TotalContributions, cal.Sum())
	}
}

func TestGenerateSuppressesBeforeCreation(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := &model.Profile{PublicRepos: 5, CreatedAt: created}
	cal := NewGenerator(WithClock(clock), WithRand(fixedRand{f: 0})).Generate(seed)

	for _, w := range cal.Weeks {
		for _, d := range w.Days {
			before := d.Date.Before(model.DateOf(created))
			if before && d.Count != 0 {
				t.Errorf("day %s before account creation has %d contributions", d.Key(), d.Count)
			}
			if !before && d.Count == 0 {
				t.Errorf("day %s after creation should be active with a zero draw", d.Key())
			}
		}
	}
}

func TestGenerateCountScalesWithRepos(t *testing.T) {
	tests := []struct {
		name string
		seed *model.Profile
		want int
	}{
		{"unseeded", nil, 10},
		{"few repos", &model.Profile{PublicRepos: 0, CreatedAt: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)}, 5},
		{"many repos capped", &model.Profile{PublicRepos: 400, CreatedAt: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewGenerator(WithClock(clock), WithRand(fixedRand{f: 0})).Generate(tt.seed)
			got := cal.Weeks[10].Days[3].Count
			if got != tt.want {
				t.Errorf("max draw count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateWeekdayBias(t *testing.T) {
	// 0.3 sits between the weekend (0.24) and weekday (0.36) probabilities.
	cal := NewGenerator(WithClock(clock), WithRand(fixedRand{f: 0.3})).Generate(nil)
	for _, w := range cal.Weeks {
		for _, d := range w.Days {
			weekend := d.Weekday == 0 || d.Weekday == 6
			if weekend && d.Count != 0 {
				t.Errorf("weekend day %s should be inactive", d.Key())
			}
			if !weekend && d.Count == 0 {
				t.Errorf("weekday %s should be active", d.Key())
			}
		}
	}
}

func TestGenerateCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.ActivityThreshold = 1
	cal := NewGenerator(WithClock(clock), WithRand(fixedRand{f: 0}), WithWeights(w)).Generate(nil)
	if cal.TotalContributions != 0 {
		t.Errorf("threshold 1 should disable activity, got %d contributions", cal.TotalContributions)
	}
}

func TestSeedScaleMonotonic(t *testing.T) {
	prev := SeedScale(-5)
	for repos := 0; repos <= 100; repos++ {
		s := SeedScale(repos)
		if s < prev {
			t.Fatalf("SeedScale(%d) = %v < SeedScale(%d) = %v", repos, s, repos-1, prev)
		}
		if s < 0.5 || s > 2 {
			t.Fatalf("SeedScale(%d) = %v out of bounds", repos, s)
		}
		prev = s
	}
}
