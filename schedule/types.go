package schedule

import "errors"

// ErrTrainNotFound reports that no schedule document exists for a train key.
var ErrTrainNotFound = errors.New("train schedule not found")

// Stop is one scheduled call on a train's route, in route order. Times are
// clock-only strings such as "8:15 AM BST"; "---" marks an absent value.
type Stop struct {
	City          string `json:"city"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	Halt          string `json:"halt"`
	Duration      string `json:"duration"`
}

// TrainData is the payload of a schedule document.
type TrainData struct {
	TrainName string   `json:"train_name"`
	Days      []string `json:"days"`
	Routes    []Stop   `json:"routes"`
}

// Train is a full schedule document as stored under schedules/. The train
// key itself is the document's filename stem and lives outside the document.
type Train struct {
	Data TrainData `json:"data"`
}

// Name returns the train's display name, or "Unknown" when the document
// carries none.
func (t Train) Name() string {
	return orUnknown(t.Data.TrainName)
}

// SearchResult pairs a train key with its schedule document.
type SearchResult struct {
	TrainKey string `json:"train_key"`
	Schedule Train  `json:"schedule"`
}

// StationTrain describes one train's call at a particular station.
type StationTrain struct {
	TrainNumber   string   `json:"train_number"`
	TrainName     string   `json:"train_name"`
	ArrivalTime   string   `json:"arrival_time"`
	DepartureTime string   `json:"departure_time"`
	HaltDuration  string   `json:"halt_duration"`
	OperatingDays []string `json:"operating_days"`
}

// LoadStatus summarizes the most recent snapshot load.
type LoadStatus struct {
	StationsCount      int    `json:"stations_count"`
	SegmentsCount      int    `json:"segments_count"`
	SchedulesCount     int    `json:"schedules_count"`
	RouteMappingsCount int    `json:"route_mappings_count"`
	LastLoaded         string `json:"last_loaded"`
	CacheValid         bool   `json:"cache_valid"`
}
