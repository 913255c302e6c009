// Package crowd stores user presence confirmations per train and turns them
// into crowd metrics and a confidence-gated adjustment of delay reports.
// Confirmations are deduplicated per (train, user) and only count as active
// for two hours. Persistence backends: in-memory, JSON file, Postgres.
package crowd
