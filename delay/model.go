package delay

import (
	"strings"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Default simulation bounds, overridable through Options.
const (
	DefaultBaseProbability = 0.3
	DefaultMaxDelayMinutes = 120

	baseDelayMin = 5
	baseDelayMax = 25
)

var weatherFactors = map[string]float64{
	"clear":  1.0,
	"cloudy": 1.2,
	"rainy":  1.5,
	"stormy": 2.0,
	"foggy":  1.8,
}

var dayFactors = map[time.Weekday]float64{
	time.Monday:    1.3,
	time.Tuesday:   1.1,
	time.Wednesday: 1.0,
	time.Thursday:  1.1,
	time.Friday:    1.4,
	time.Saturday:  0.9,
	time.Sunday:    0.8,
}

// stationFactors match by case-insensitive substring, so "Dhaka Cantonment"
// picks up the Dhaka hub factor. Order matters for overlapping names.
var stationFactors = []struct {
	name   string
	factor float64
}{
	{"Dhaka", 1.5},
	{"Chattogram", 1.4},
	{"Rajshahi", 1.2},
	{"Khulna", 1.2},
	{"Sylhet", 1.1},
	{"Barisal", 1.1},
	{"Rangpur", 1.1},
	{"Mymensingh", 1.0},
}

func weatherFactor(condition string) float64 {
	if f, ok := weatherFactors[condition]; ok {
		return f
	}
	return 1.0
}

func timeOfDayFactor(t time.Time) float64 {
	switch h := t.Hour(); {
	case h >= 5 && h < 8:
		return 0.8
	case h >= 8 && h < 10:
		return 1.4
	case h >= 10 && h < 12:
		return 1.0
	case h >= 12 && h < 17:
		return 1.1
	case h >= 17 && h < 20:
		return 1.6
	case h >= 20 && h < 22:
		return 1.2
	default:
		return 0.9
	}
}

func dayOfWeekFactor(t time.Time) float64 {
	if f, ok := dayFactors[t.Weekday()]; ok {
		return f
	}
	return 1.0
}

func stationFactor(station string) float64 {
	lower := strings.ToLower(station)
	for _, sf := range stationFactors {
		if strings.Contains(lower, strings.ToLower(sf.name)) {
			return sf.factor
		}
	}
	return 1.0
}

// Options bounds the synthetic delay model. Zero values fall back to the
// defaults above.
type Options struct {
	BaseProbability float64
	MaxDelayMinutes int
}

// Model synthesizes delays and keeps a bounded history of what it produced.
// Safe for concurrent use; every draw and every history mutation runs under
// one model mutex so concurrent requests cannot corrupt a bucket.
type Model struct {
	baseProbability float64
	maxDelayMinutes int

	// OnSimulate, when set, is called once per simulation. The server wires
	// it to a metrics counter.
	OnSimulate func()

	mu      sync.Mutex
	rng     Rand
	history map[string]map[string]*ring // train -> station -> observations
}

// NewModel creates a delay model. A nil rng selects the default source.
func NewModel(rng Rand, opts Options) *Model {
	if rng == nil {
		rng = NewRand()
	}
	if opts.BaseProbability <= 0 {
		opts.BaseProbability = DefaultBaseProbability
	}
	if opts.MaxDelayMinutes <= 0 {
		opts.MaxDelayMinutes = DefaultMaxDelayMinutes
	}
	return &Model{
		baseProbability: opts.BaseProbability,
		maxDelayMinutes: opts.MaxDelayMinutes,
		rng:             rng,
		history:         map[string]map[string]*ring{},
	}
}

// Result reports one simulated delay and the multipliers behind it. The
// factors are exposed so callers and tests can see how the number came to be.
type Result struct {
	DelayMinutes     int     `json:"delay_minutes"`
	ScheduledTime    string  `json:"scheduled_time"`
	ActualTime       string  `json:"actual_time"`
	WeatherCondition string  `json:"weather_condition"`
	FactorsApplied   Factors `json:"factors_applied"`
}

// Factors are the four multipliers applied to the base delay.
type Factors struct {
	Weather   float64 `json:"weather"`
	TimeOfDay float64 `json:"time_of_day"`
	DayOfWeek float64 `json:"day_of_week"`
	Station   float64 `json:"station"`
}

// Simulate synthesizes a delay for a train at a station: a probabilistic
// base draw, four factor multipliers, a final jitter, then truncation and
// clamping. The result is recorded in the (train, station) history bucket.
func (m *Model) Simulate(trainNumber, station string, scheduled, now time.Time, weather string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := 0
	if m.rng.Float64() < m.baseProbability {
		base = baseDelayMin + m.rng.IntN(baseDelayMax-baseDelayMin+1)
	}

	factors := Factors{
		Weather:   weatherFactor(weather),
		TimeOfDay: timeOfDayFactor(now),
		DayOfWeek: dayOfWeekFactor(now),
		Station:   stationFactor(station),
	}

	jitter := 0.8 + m.rng.Float64()*0.4
	minutes := int(float64(base) * factors.Weather * factors.TimeOfDay * factors.DayOfWeek * factors.Station * jitter)
	if minutes < 0 {
		minutes = 0
	}
	if minutes > m.maxDelayMinutes {
		minutes = m.maxDelayMinutes
	}

	m.recordLocked(trainNumber, station, minutes, now)
	if m.OnSimulate != nil {
		m.OnSimulate()
	}

	return Result{
		DelayMinutes:     minutes,
		ScheduledTime:    utils.Iso8601(scheduled),
		ActualTime:       utils.Iso8601(scheduled.Add(time.Duration(minutes) * time.Minute)),
		WeatherCondition: weather,
		FactorsApplied:   factors,
	}
}

func (m *Model) recordLocked(trainNumber, station string, minutes int, now time.Time) {
	buckets, ok := m.history[trainNumber]
	if !ok {
		buckets = map[string]*ring{}
		m.history[trainNumber] = buckets
	}
	b, ok := buckets[station]
	if !ok {
		b = &ring{}
		buckets[station] = b
	}
	b.append(Observation{Delay: minutes, Timestamp: now})
}
