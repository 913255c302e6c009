// Package geo provides great-circle distance calculations over station
// coordinates using the haversine formula.
package geo
