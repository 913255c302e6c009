package crowd

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Store defaults, overridable through Options.
const (
	DefaultActiveWindow = 2 * time.Hour
	DefaultMaxPerTrain  = 1000
	DefaultCleanupAge   = 24 * time.Hour
)

// Persistence is the storage backend behind a Store. Implementations need
// not be goroutine-safe; the store serializes all access.
type Persistence interface {
	Load() (map[string]*TrainValidations, error)
	Save(map[string]*TrainValidations) error
	Close() error
}

// Options tunes a Store. Zero values fall back to the defaults above.
type Options struct {
	ActiveWindow time.Duration
	MaxPerTrain  int
}

// Store keeps crowd confirmations per train. All state lives under one
// mutex; the persistence backend is written through on every mutation.
type Store struct {
	mu          sync.Mutex
	persist     Persistence
	rng         delay.Rand
	window      time.Duration
	maxPerTrain int
	trains      map[string]*TrainValidations
}

// NewStore opens a store over a persistence backend, loading any existing
// state. A nil rng selects the default source.
func NewStore(persist Persistence, rng delay.Rand, opts Options) (*Store, error) {
	if rng == nil {
		rng = delay.NewRand()
	}
	if opts.ActiveWindow <= 0 {
		opts.ActiveWindow = DefaultActiveWindow
	}
	if opts.MaxPerTrain <= 0 {
		opts.MaxPerTrain = DefaultMaxPerTrain
	}
	trains, err := persist.Load()
	if err != nil {
		return nil, fmt.Errorf("loading crowd validations: %w", err)
	}
	if trains == nil {
		trains = map[string]*TrainValidations{}
	}
	return &Store{
		persist:     persist,
		rng:         rng,
		window:      opts.ActiveWindow,
		maxPerTrain: opts.MaxPerTrain,
		trains:      trains,
	}, nil
}

// Confirm records that a user is on a train. A repeat confirmation by the
// same user updates their entry in place; new entries past the per-train cap
// evict the oldest stored confirmation.
func (s *Store) Confirm(trainNumber, userID, stationName string, coords map[string]float64) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	tv, ok := s.trains[trainNumber]
	if !ok {
		tv = &TrainValidations{}
		s.trains[trainNumber] = tv
	}

	message := "Confirmation added"
	updated := false
	for i := range tv.Confirmations {
		if tv.Confirmations[i].UserID == userID {
			tv.Confirmations[i].Timestamp = now
			tv.Confirmations[i].StationName = stationName
			tv.Confirmations[i].Coordinates = coords
			message = "Confirmation updated"
			updated = true
			break
		}
	}
	if !updated {
		tv.Confirmations = append(tv.Confirmations, Confirmation{
			ID:          uuid.NewString(),
			UserID:      userID,
			Timestamp:   now,
			StationName: stationName,
			Coordinates: coords,
		})
		tv.TotalConfirmations++
		if len(tv.Confirmations) > s.maxPerTrain {
			tv.Confirmations = tv.Confirmations[len(tv.Confirmations)-s.maxPerTrain:]
		}
	}
	tv.LastUpdated = now

	if err := s.saveLocked(); err != nil {
		return ConfirmResult{}, err
	}
	return ConfirmResult{
		Message:   message,
		Timestamp: utils.Iso8601(now),
		Metrics:   s.metricsLocked(trainNumber, now),
	}, nil
}

// Remove deletes a user's confirmation from a train.
func (s *Store) Remove(trainNumber, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tv, ok := s.trains[trainNumber]
	if !ok {
		return ErrNoValidations
	}
	for i := range tv.Confirmations {
		if tv.Confirmations[i].UserID == userID {
			tv.Confirmations = append(tv.Confirmations[:i], tv.Confirmations[i+1:]...)
			if tv.TotalConfirmations > 0 {
				tv.TotalConfirmations--
			}
			tv.LastUpdated = time.Now()
			return s.saveLocked()
		}
	}
	return ErrConfirmationNotFound
}

// CrowdData returns the live crowd view for a train. Unknown trains yield a
// zero-value view rather than an error.
func (s *Store) CrowdData(trainNumber string) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crowdDataLocked(trainNumber, time.Now())
}

func (s *Store) crowdDataLocked(trainNumber string, now time.Time) Data {
	data := Data{
		TrainNumber:   trainNumber,
		CrowdLevel:    "low",
		Confirmations: []Confirmation{},
	}
	tv, ok := s.trains[trainNumber]
	if !ok {
		return data
	}

	for _, c := range tv.Confirmations {
		if now.Sub(c.Timestamp) <= s.window {
			data.Confirmations = append(data.Confirmations, c)
		}
	}
	data.TotalConfirmations = tv.TotalConfirmations
	data.ActiveConfirmations = len(data.Confirmations)
	data.CrowdLevel = levelFor(data.ActiveConfirmations)
	if !tv.LastUpdated.IsZero() {
		data.LastUpdated = utils.Iso8601(tv.LastUpdated)
	}
	return data
}

func levelFor(active int) string {
	switch {
	case active == 0:
		return "low"
	case active <= 5:
		return "medium"
	case active <= 15:
		return "high"
	default:
		return "very_high"
	}
}

// Metrics reports the confidence of a train's crowd signal.
func (s *Store) Metrics(trainNumber string) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricsLocked(trainNumber, time.Now())
}

func (s *Store) metricsLocked(trainNumber string, now time.Time) Metrics {
	data := s.crowdDataLocked(trainNumber, now)

	confidence := "none"
	switch {
	case data.ActiveConfirmations == 0:
	case data.ActiveConfirmations <= 3:
		confidence = "low"
	case data.ActiveConfirmations <= 10:
		confidence = "medium"
	default:
		confidence = "high"
	}

	avgMinutes := 0
	if len(data.Confirmations) > 0 {
		totalSeconds := 0.0
		for _, c := range data.Confirmations {
			totalSeconds += now.Sub(c.Timestamp).Seconds()
		}
		avgMinutes = int(totalSeconds / float64(len(data.Confirmations)) / 60)
	}

	freshness := "low"
	switch {
	case len(data.Confirmations) == 0:
	case avgMinutes < 30:
		freshness = "high"
	case avgMinutes < 60:
		freshness = "medium"
	}

	return Metrics{
		CrowdLevel:                   data.CrowdLevel,
		Confidence:                   confidence,
		ActiveUsers:                  data.ActiveConfirmations,
		AverageTimeSinceConfirmation: fmt.Sprintf("%d minutes ago", avgMinutes),
		DataFreshness:                freshness,
	}
}

// Summary aggregates counts across all trains for health reporting.
func (s *Store) Summary() TrainSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	summary := TrainSummary{TotalTrains: len(s.trains)}
	for _, tv := range s.trains {
		for _, c := range tv.Confirmations {
			if now.Sub(c.Timestamp) <= s.window {
				summary.ActiveValidations++
			}
		}
	}
	return summary
}

// Cleanup drops confirmations older than maxAge, resets totals to what
// remains, and deletes emptied trains. It reports how many train buckets
// were removed.
func (s *Store) Cleanup(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultCleanupAge
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for train, tv := range s.trains {
		kept := tv.Confirmations[:0]
		for _, c := range tv.Confirmations {
			if now.Sub(c.Timestamp) <= maxAge {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(s.trains, train)
			removed++
			continue
		}
		tv.Confirmations = kept
		tv.TotalConfirmations = len(kept)
	}

	if err := s.saveLocked(); err != nil {
		log.Printf("persisting crowd cleanup: %v", err)
	}
	return removed
}

func (s *Store) saveLocked() error {
	if err := s.persist.Save(s.trains); err != nil {
		return fmt.Errorf("persisting crowd validations: %w", err)
	}
	return nil
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist.Close()
}
