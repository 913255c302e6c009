// Package utils provides internal utility functions for the trainjatri backend.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Clock-time parsing for the schedule data's "H:MM AM/PM" strings
//   - ISO8601 timestamp formatting
//   - ETA and rounding helpers shared across packages
package utils
