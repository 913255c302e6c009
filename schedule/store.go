package schedule

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/geo"
	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Snapshot stores one load pass of the reference data in memory for fast
// lookups. Safe for concurrent use once constructed.
type Snapshot struct {
	stations      map[string][]float64       // station name -> [lon, lat]
	segments      map[string]json.RawMessage // segment id -> polyline, served opaquely
	trains        map[string]Train           // train key -> schedule document
	routeMappings map[string]json.RawMessage // train key -> route mapping
	loadedAt      time.Time
}

// Stations returns the raw station map as loaded from stations.json.
func (s *Snapshot) Stations() map[string][]float64 { return s.stations }

// SegmentsCount returns the number of loaded route segments.
func (s *Snapshot) SegmentsCount() int { return len(s.segments) }

// RouteMappingsCount returns the number of loaded route mappings.
func (s *Snapshot) RouteMappingsCount() int { return len(s.routeMappings) }

// RouteMapping returns the raw route mapping document for a train.
func (s *Snapshot) RouteMapping(trainNumber string) (json.RawMessage, bool) {
	m, ok := s.routeMappings[trainNumber]
	return m, ok
}

// Train returns the full schedule document for a train key.
func (s *Snapshot) Train(trainNumber string) (Train, bool) {
	tr, ok := s.trains[trainNumber]
	return tr, ok
}

// Route returns a train's ordered stop list.
func (s *Snapshot) Route(trainNumber string) ([]Stop, bool) {
	tr, ok := s.trains[trainNumber]
	if !ok {
		return nil, false
	}
	return tr.Data.Routes, true
}

// TrainNumbers returns all known train keys in sorted order.
func (s *Snapshot) TrainNumbers() []string {
	keys := make([]string, 0, len(s.trains))
	for k := range s.trains {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Coordinates returns a station's position. Unknown stations and malformed
// entries report ok=false.
func (s *Snapshot) Coordinates(station string) (geo.Coordinate, bool) {
	c, ok := s.stations[station]
	if !ok || len(c) < 2 {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lon: c[0], Lat: c[1]}, true
}

// StationDistance returns the great-circle distance between two stations in
// kilometers. A station without coordinates contributes 0.0 with a logged
// warning; distance lookups never fail.
func (s *Snapshot) StationDistance(station1, station2 string) float64 {
	c1, ok1 := s.Coordinates(station1)
	c2, ok2 := s.Coordinates(station2)
	if !ok1 || !ok2 {
		log.Printf("station not found: %s or %s", station1, station2)
		return 0.0
	}
	return geo.Distance(c1, c2)
}

// DistanceFromStart sums pairwise station distances along route up to stop
// index idx.
func (s *Snapshot) DistanceFromStart(route []Stop, idx int) float64 {
	total := 0.0
	for i := 0; i < idx && i+1 < len(route); i++ {
		total += s.StationDistance(route[i].City, route[i+1].City)
	}
	return total
}

// DistanceToNext returns the distance from stop idx to the following stop,
// or 0 past the end of the route.
func (s *Snapshot) DistanceToNext(route []Stop, idx int) float64 {
	if idx+1 >= len(route) {
		return 0.0
	}
	return s.StationDistance(route[idx].City, route[idx+1].City)
}

// TotalRouteDistance returns the end-to-end length of a route, rounded to
// two decimals. Stations without coordinates contribute zero-length legs.
func (s *Snapshot) TotalRouteDistance(route []Stop) float64 {
	coords := make([]geo.Coordinate, 0, len(route))
	resolved := true
	for _, stop := range route {
		c, ok := s.Coordinates(stop.City)
		if !ok {
			resolved = false
			break
		}
		coords = append(coords, c)
	}
	if resolved {
		return geo.RouteDistance(coords)
	}
	return utils.RoundTo(s.DistanceFromStart(route, len(route)), 2)
}

// SearchByStations returns trains whose route calls at both stations with
// from strictly before to. Station names match exactly.
func (s *Snapshot) SearchByStations(from, to string) []SearchResult {
	results := []SearchResult{}
	for _, key := range s.TrainNumbers() {
		tr := s.trains[key]
		fromIdx, toIdx := -1, -1
		for i, stop := range tr.Data.Routes {
			if fromIdx < 0 && stop.City == from {
				fromIdx = i
			}
			if toIdx < 0 && stop.City == to {
				toIdx = i
			}
		}
		if fromIdx >= 0 && toIdx >= 0 && fromIdx < toIdx {
			results = append(results, SearchResult{TrainKey: key, Schedule: tr})
		}
	}
	return results
}

// SearchByNumber returns trains whose key or display name contains the query,
// case-insensitively.
func (s *Snapshot) SearchByNumber(query string) []SearchResult {
	q := strings.ToLower(query)
	results := []SearchResult{}
	for _, key := range s.TrainNumbers() {
		tr := s.trains[key]
		if strings.Contains(strings.ToLower(key), q) || strings.Contains(strings.ToLower(tr.Data.TrainName), q) {
			results = append(results, SearchResult{TrainKey: key, Schedule: tr})
		}
	}
	return results
}

// TrainsAtStation returns every train calling at the named station (exact
// match) with that station's scheduled times.
func (s *Snapshot) TrainsAtStation(station string) []StationTrain {
	results := []StationTrain{}
	for _, key := range s.TrainNumbers() {
		tr := s.trains[key]
		for _, stop := range tr.Data.Routes {
			if stop.City != station {
				continue
			}
			results = append(results, StationTrain{
				TrainNumber:   key,
				TrainName:     orUnknown(tr.Data.TrainName),
				ArrivalTime:   stop.ArrivalTime,
				DepartureTime: stop.DepartureTime,
				HaltDuration:  orPlaceholder(stop.Halt),
				OperatingDays: tr.Data.Days,
			})
			break
		}
	}
	return results
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orPlaceholder(s string) string {
	if s == "" {
		return "---"
	}
	return s
}

// Store serves schedule reference data from a data directory, reloading the
// snapshot at most once per TTL. The zero TTL disables caching entirely.
type Store struct {
	dataDir string
	ttl     time.Duration

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store over a data directory. Nothing is read until the
// first access or Refresh.
func NewStore(dataDir string, ttl time.Duration) *Store {
	return &Store{dataDir: dataDir, ttl: ttl}
}

// Refresh reloads the snapshot when forced or stale and reports the load
// status. A still-fresh snapshot is reused.
func (st *Store) Refresh(force bool) LoadStatus {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !force && st.freshLocked() {
		log.Printf("using cached data")
		return st.statusLocked()
	}
	st.snap = loadSnapshot(st.dataDir)
	return st.statusLocked()
}

// Status reports the current snapshot's load status without reloading.
func (st *Store) Status() LoadStatus {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.statusLocked()
}

// Snapshot returns the current snapshot, loading it on first use and
// reloading it once the TTL has passed.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	snap := st.snap
	fresh := st.freshLocked()
	st.mu.RUnlock()
	if fresh {
		return snap
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.freshLocked() {
		st.snap = loadSnapshot(st.dataDir)
	}
	return st.snap
}

func (st *Store) freshLocked() bool {
	return st.snap != nil && time.Since(st.snap.loadedAt) < st.ttl
}

func (st *Store) statusLocked() LoadStatus {
	if st.snap == nil {
		return LoadStatus{}
	}
	return LoadStatus{
		StationsCount:      len(st.snap.stations),
		SegmentsCount:      len(st.snap.segments),
		SchedulesCount:     len(st.snap.trains),
		RouteMappingsCount: len(st.snap.routeMappings),
		LastLoaded:         utils.Iso8601(st.snap.loadedAt),
		CacheValid:         st.freshLocked(),
	}
}
