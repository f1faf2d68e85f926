// Package contrib produces contribution calendars, from GitHub when it can
// and from a plausible generator when it cannot.
package contrib

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/model"
)

// Rand is the random source used by generators. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Weights are the tunable parameters of the fallback generator.
type Weights struct {
	// ActivityThreshold is the draw a day must exceed to have activity
	// before multipliers are applied; 0.7 gives a 30% base rate.
	ActivityThreshold float64 `yaml:"activity_threshold" json:"activityThreshold"`
	WeekdayMultiplier float64 `yaml:"weekday_multiplier" json:"weekdayMultiplier"`
	WeekendMultiplier float64 `yaml:"weekend_multiplier" json:"weekendMultiplier"`
	MaxCount          int     `yaml:"max_count" json:"maxCount"`
}

// DefaultWeights returns the stock generator parameters.
func DefaultWeights() Weights {
	return Weights{
		ActivityThreshold: constants.ActivityThreshold,
		WeekdayMultiplier: constants.WeekdayMultiplier,
		WeekendMultiplier: constants.WeekendMultiplier,
		MaxCount:          constants.MaxDailyCount,
	}
}

// Generator builds synthetic contribution calendars without any I/O.
type Generator struct {
	weights Weights
	now     func() time.Time

	mu  sync.Mutex // guards rnd
	rnd Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRand injects the random source, for reproducible output.
func WithRand(r Rand) GeneratorOption {
	return func(g *Generator) {
		g.rnd = r
	}
}

// WithClock sets the function used to determine today.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithWeights overrides the default generator parameters.
func WithWeights(w Weights) GeneratorOption {
	return func(g *Generator) {
		g.weights = w
	}
}

// NewGenerator creates a generator seeded from the wall clock unless
// WithRand is given.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		weights: DefaultWeights(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		seed := uint64(g.now().UnixNano())
		g.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return g
}

// SeedScale maps a public repository count to an activity multiplier.
// It is non-decreasing in repos and bounded to [0.5, 2].
func SeedScale(publicRepos int) float64 {
	scale := 0.5 + float64(max(publicRepos, 0))/20
	return math.Min(scale, 2.0)
}

// Generate builds a 52-week calendar ending about a year after the Sunday on
// or before today minus one year. A non-nil seed scales activity by its
// repository count and blanks every day before the account was created.
func (g *Generator) Generate(seed *model.Profile) model.ContributionCalendar {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := model.DateOf(g.now())
	start := model.SundayOnOrBefore(today.AddDate(-1, 0, 0))

	scale := 1.0
	var created time.Time
	if seed != nil {
		scale = SeedScale(seed.PublicRepos)
		if !seed.CreatedAt.IsZero() {
			created = model.DateOf(seed.CreatedAt)
		}
	}
	maxCount := max(int(math.Ceil(float64(g.weights.MaxCount)*scale)), 1)

	weeks := make([]model.ContributionWeek, 0, constants.GenerationWeeks)
	for w := 0; w < constants.GenerationWeeks; w++ {
		first := start.AddDate(0, 0, w*model.DaysPerWeek)
		week := model.ContributionWeek{
			FirstDay: first,
			Days:     make([]model.ContributionDay, model.DaysPerWeek),
		}
		for d := 0; d < model.DaysPerWeek; d++ {
			date := first.AddDate(0, 0, d)
			count := 0
			if !date.After(today) && (created.IsZero() || !date.Before(created)) {
				if g.rnd.Float64() < g.probability(date.Weekday(), scale) {
					count = 1 + g.rnd.IntN(maxCount)
				}
			}
			week.Days[d] = model.ContributionDay{
				Date:    date,
				Count:   count,
				Weekday: int(date.Weekday()),
			}
		}
		weeks = append(weeks, week)
	}

	cal := model.ContributionCalendar{Weeks: weeks[:constants.CalendarWeeks]}
	cal.TotalContributions = cal.Sum()
	return cal
}

func (g *Generator) probability(day time.Weekday, scale float64) float64 {
	mult := g.weights.WeekdayMultiplier
	if day == time.Saturday || day == time.Sunday {
		mult = g.weights.WeekendMultiplier
	}
	p := (1 - g.weights.ActivityThreshold) * mult * scale
	return math.Max(0, math.Min(p, constants.MaxActivityProbability))
}
