package crowd

import (
	"errors"
	"time"
)

// Sentinel errors for removal flows.
var (
	ErrNoValidations        = errors.New("no validations found for this train")
	ErrConfirmationNotFound = errors.New("user confirmation not found")
)

// Confirmation is one user's "I am on this train" report.
type Confirmation struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Timestamp   time.Time          `json:"timestamp"`
	StationName string             `json:"station_name,omitempty"`
	Coordinates map[string]float64 `json:"coordinates,omitempty"`
}

// TrainValidations is the stored bucket for one train.
type TrainValidations struct {
	Confirmations      []Confirmation `json:"confirmations"`
	LastUpdated        time.Time      `json:"last_updated"`
	TotalConfirmations int            `json:"total_confirmations"`
}

// Data is the live crowd view for one train: the active confirmations plus
// the derived level.
type Data struct {
	TrainNumber         string         `json:"train_number"`
	TotalConfirmations  int            `json:"total_confirmations"`
	ActiveConfirmations int            `json:"active_confirmations"`
	CrowdLevel          string         `json:"crowd_level"`
	LastUpdated         string         `json:"last_updated"`
	Confirmations       []Confirmation `json:"confirmations"`
}

// Metrics summarizes how trustworthy a train's crowd signal currently is.
type Metrics struct {
	CrowdLevel                   string `json:"crowd_level"`
	Confidence                   string `json:"confidence"`
	ActiveUsers                  int    `json:"active_users"`
	AverageTimeSinceConfirmation string `json:"average_time_since_confirmation"`
	DataFreshness                string `json:"data_freshness"`
}

// TrainSummary aggregates store-wide counts for health reporting.
type TrainSummary struct {
	TotalTrains       int `json:"total_trains"`
	ActiveValidations int `json:"active_validations"`
}

// ConfirmResult is what a successful Confirm call reports back.
type ConfirmResult struct {
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Metrics   Metrics `json:"crowd_metrics"`
}
