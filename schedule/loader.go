package schedule

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// loadSnapshot reads every data source under dataDir. Each source degrades
// independently: unreadable files are logged and yield empty datasets.
func loadSnapshot(dataDir string) *Snapshot {
	return &Snapshot{
		stations:      loadStations(dataDir),
		segments:      loadSegments(dataDir),
		trains:        loadSchedules(dataDir),
		routeMappings: loadRouteMappings(dataDir),
		loadedAt:      time.Now(),
	}
}

func loadStations(dataDir string) map[string][]float64 {
	path := filepath.Join(dataDir, "stations.json")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("stations.json not found in %s", dataDir)
		return map[string][]float64{}
	}
	stations := map[string][]float64{}
	if err := json.Unmarshal(data, &stations); err != nil {
		log.Printf("error loading stations: %v", err)
		return map[string][]float64{}
	}
	log.Printf("loaded %d stations", len(stations))
	return stations
}

func loadSegments(dataDir string) map[string]json.RawMessage {
	path := filepath.Join(dataDir, "Bangladesh_500m_segments.json")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Bangladesh_500m_segments.json not found in %s", dataDir)
		return map[string]json.RawMessage{}
	}
	segments := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &segments); err != nil {
		log.Printf("error loading segments: %v", err)
		return map[string]json.RawMessage{}
	}
	log.Printf("loaded %d segments", len(segments))
	return segments
}

func loadSchedules(dataDir string) map[string]Train {
	dir := filepath.Join(dataDir, "schedules")
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		log.Printf("schedules/ directory not found or empty in %s", dataDir)
		return map[string]Train{}
	}

	trains := map[string]Train{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Printf("error loading %s: %v", f, err)
			continue
		}
		var tr Train
		if err := json.Unmarshal(data, &tr); err != nil {
			log.Printf("error loading %s: %v", f, err)
			continue
		}
		key := strings.TrimSuffix(filepath.Base(f), ".json")
		trains[key] = tr
	}
	log.Printf("loaded %d schedules", len(trains))
	return trains
}

func loadRouteMappings(dataDir string) map[string]json.RawMessage {
	files, err := filepath.Glob(filepath.Join(dataDir, "*train_route_mapping*.json"))
	if err != nil {
		return map[string]json.RawMessage{}
	}

	mappings := map[string]json.RawMessage{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Printf("error loading %s: %v", f, err)
			continue
		}
		part := map[string]json.RawMessage{}
		if err := json.Unmarshal(data, &part); err != nil {
			log.Printf("error loading %s: %v", f, err)
			continue
		}
		for k, v := range part {
			mappings[k] = v
		}
	}
	log.Printf("loaded %d route mappings", len(mappings))
	return mappings
}
