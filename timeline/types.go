package timeline

// StationStatus is one stop of the report, tagged relative to the train's
// current position and annotated with its simulated delay.
type StationStatus struct {
	StationName        string  `json:"station_name"`
	Status             string  `json:"status"`
	ScheduledArrival   string  `json:"scheduled_arrival,omitempty"`
	ScheduledDeparture string  `json:"scheduled_departure,omitempty"`
	ActualArrival      string  `json:"actual_arrival,omitempty"`
	ActualDeparture    string  `json:"actual_departure,omitempty"`
	DelayMinutes       int     `json:"delay_minutes"`
	HaltDuration       string  `json:"halt_duration"`
	Duration           string  `json:"duration"`
	DistanceFromStart  float64 `json:"distance_from_start"`
	WeatherCondition   string  `json:"weather_condition"`
	CrowdLevel         string  `json:"crowd_level"`
}

// CrowdValidation summarizes the crowd signal attached to a report after
// adjustment.
type CrowdValidation struct {
	Confidence  string `json:"confidence"`
	ActiveUsers int    `json:"active_users"`
	CrowdLevel  string `json:"crowd_level"`
	LastUpdated string `json:"last_updated"`
}

// TrainStatus is the assembled live report for one train. The crowd fields
// are only present after crowd adjustment.
type TrainStatus struct {
	TrainNumber        string          `json:"train_number"`
	TrainName          string          `json:"train_name"`
	StationStatuses    []StationStatus `json:"station_statuses"`
	CurrentSpeed       float64         `json:"current_speed"`
	DistanceCovered    float64         `json:"distance_covered"`
	DistanceToNext     float64         `json:"distance_to_next"`
	DelayMinutes       int             `json:"delay_minutes"`
	EstimatedArrival   string          `json:"estimated_arrival"`
	ProgressPercentage float64         `json:"progress_percentage"`
	CurrentStation     string          `json:"current_station"`
	NextStation        string          `json:"next_station"`
	WeatherCondition   string          `json:"weather_condition"`
	LastUpdated        string          `json:"last_updated"`

	CrowdValidation    *CrowdValidation `json:"crowd_validation,omitempty"`
	ETAAdjustedByCrowd bool             `json:"eta_adjusted_by_crowd,omitempty"`
	CrowdETAConfidence string           `json:"crowd_eta_confidence,omitempty"`
}
