/*
Package delay synthesizes per-station train delays.

Nothing here measures a train: delays are drawn from a multi-factor random
model (weather, time of day, day of week, station) and recorded in bounded
per-(train, station) history buckets. Statistics and probability predictions
are derived from that recorded history, so they only reflect what the model
itself has produced.

All randomness flows through the Rand interface; tests inject fixed
sequences to pin outputs.
*/
package delay
