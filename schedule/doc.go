/*
Package schedule provides loading and indexed access to the static reference
data: station coordinates, route segments, per-train schedule documents, and
train route mappings.

Data lives as JSON files in one data directory:

	stations.json                    station name -> [lon, lat]
	Bangladesh_500m_segments.json    route segment polylines
	schedules/<train_key>.json       one schedule document per train
	*train_route_mapping*.json       merged train -> route mapping

The Store keeps an immutable in-memory Snapshot and reloads it at most once
per TTL (forced refresh bypasses the TTL). Individual unreadable files are
logged and skipped; a missing file yields an empty dataset, never an error.
Parse the data once and share the Store - per-request file reads are wasteful.
*/
package schedule
