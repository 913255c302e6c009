package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	stations := `{
		"Dhaka": [90.4125, 23.8103],
		"Tongi": [90.4037, 23.8915],
		"Chattogram": [91.8123, 22.3569]
	}`
	if err := os.WriteFile(filepath.Join(dir, "stations.json"), []byte(stations), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.Mkdir(filepath.Join(dir, "schedules"), 0o755); err != nil {
		t.Fatal(err)
	}
	train706 := `{
		"data": {
			"train_name": "Subarna Express",
			"days": ["Sunday", "Monday"],
			"routes": [
				{"city": "Dhaka", "arrival_time": "---", "departure_time": "9:00 AM", "halt": "---", "duration": "---"},
				{"city": "Tongi", "arrival_time": "10:00 AM", "departure_time": "10:05 AM", "halt": "5m", "duration": "1h"},
				{"city": "Chattogram", "arrival_time": "1:00 PM", "departure_time": "---", "halt": "---", "duration": "3h"}
			]
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "schedules", "706.json"), []byte(train706), 0o644); err != nil {
		t.Fatal(err)
	}
	train705 := `{
		"data": {
			"train_name": "Ekota Express",
			"days": ["Tuesday"],
			"routes": [
				{"city": "Chattogram", "arrival_time": "---", "departure_time": "3:00 PM", "halt": "---", "duration": "---"},
				{"city": "Dhaka", "arrival_time": "8:00 PM", "departure_time": "---", "halt": "---", "duration": "5h"}
			]
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "schedules", "705.json"), []byte(train705), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSnapshotLookups(t *testing.T) {
	store := NewStore(writeTestData(t), time.Minute)
	snap := store.Snapshot()

	if got := len(snap.Stations()); got != 3 {
		t.Fatalf("expected 3 stations, got %v", got)
	}

	route, ok := snap.Route("706")
	if !ok {
		t.Fatal("expected route for train 706")
	}
	if len(route) != 3 || route[0].City != "Dhaka" {
		t.Errorf("expected 3 stops starting at Dhaka, got %+v", route)
	}

	if _, ok := snap.Route("999"); ok {
		t.Error("expected no route for unknown train")
	}

	c, ok := snap.Coordinates("Dhaka")
	if !ok || c.Lon != 90.4125 || c.Lat != 23.8103 {
		t.Errorf("expected Dhaka coordinates, got %+v ok=%v", c, ok)
	}
}

func TestSearchByStations(t *testing.T) {
	snap := NewStore(writeTestData(t), time.Minute).Snapshot()

	tests := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{name: "forward", from: "Dhaka", to: "Chattogram", want: []string{"706"}},
		{name: "reverse direction excluded", from: "Chattogram", to: "Dhaka", want: []string{"705"}},
		{name: "unknown station", from: "Sylhet", to: "Dhaka", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := snap.SearchByStations(tt.from, tt.to)
			if len(results) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(results))
			}
			for i, want := range tt.want {
				if results[i].TrainKey != want {
					t.Errorf("expected train %s, got %s", want, results[i].TrainKey)
				}
			}
		})
	}
}

func TestSearchByNumber(t *testing.T) {
	snap := NewStore(writeTestData(t), time.Minute).Snapshot()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "by key", query: "706", want: 1},
		{name: "by name substring", query: "subarna", want: 1},
		{name: "shared suffix", query: "70", want: 2},
		{name: "no match", query: "nonexistent", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(snap.SearchByNumber(tt.query)); got != tt.want {
				t.Errorf("expected %d results, got %d", tt.want, got)
			}
		})
	}
}

func TestTrainsAtStation(t *testing.T) {
	snap := NewStore(writeTestData(t), time.Minute).Snapshot()

	trains := snap.TrainsAtStation("Dhaka")
	if len(trains) != 2 {
		t.Fatalf("expected 2 trains at Dhaka, got %d", len(trains))
	}
	if trains := snap.TrainsAtStation("Sylhet"); len(trains) != 0 {
		t.Errorf("expected no trains at unknown station, got %d", len(trains))
	}
}

func TestStationDistance(t *testing.T) {
	snap := NewStore(writeTestData(t), time.Minute).Snapshot()

	d := snap.StationDistance("Dhaka", "Chattogram")
	if d <= 0 {
		t.Errorf("expected positive distance, got %v", d)
	}
	if rd := snap.StationDistance("Chattogram", "Dhaka"); rd != d {
		t.Errorf("expected symmetric distance, got %v and %v", d, rd)
	}
	if d := snap.StationDistance("Dhaka", "Nowhere"); d != 0 {
		t.Errorf("expected 0 for unknown station, got %v", d)
	}
}

func TestRefreshCaching(t *testing.T) {
	store := NewStore(writeTestData(t), time.Hour)

	status := store.Refresh(false)
	if status.SchedulesCount != 2 {
		t.Fatalf("expected 2 schedules, got %v", status.SchedulesCount)
	}
	if !status.CacheValid {
		t.Error("expected fresh snapshot to be cache valid")
	}

	first := store.Snapshot()
	store.Refresh(false)
	if store.Snapshot() != first {
		t.Error("expected cached snapshot to be reused")
	}
	store.Refresh(true)
	if store.Snapshot() == first {
		t.Error("expected forced refresh to rebuild the snapshot")
	}
}

func TestSnapshotReloadsAfterTTL(t *testing.T) {
	dir := writeTestData(t)
	store := NewStore(dir, 50*time.Millisecond)

	first := store.Snapshot()
	if got := len(first.Stations()); got != 3 {
		t.Fatalf("expected 3 stations, got %v", got)
	}
	if store.Snapshot() != first {
		t.Error("expected fresh snapshot to be reused")
	}

	stations := `{"Dhaka": [90.4125, 23.8103]}`
	if err := os.WriteFile(filepath.Join(dir, "stations.json"), []byte(stations), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	second := store.Snapshot()
	if second == first {
		t.Fatal("expected a reload after the TTL expired")
	}
	if got := len(second.Stations()); got != 1 {
		t.Errorf("expected 1 station after reload, got %v", got)
	}
}

func TestMissingDataDir(t *testing.T) {
	store := NewStore(t.TempDir(), time.Minute)
	status := store.Refresh(true)
	if status.SchedulesCount != 0 || status.StationsCount != 0 {
		t.Errorf("expected empty load status, got %+v", status)
	}
}
