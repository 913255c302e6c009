// Package feed renders the service's delay estimates as a GTFS-Realtime
// TripUpdates feed so standard transit consumers can ingest them.
package feed
