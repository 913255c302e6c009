// Package timeline assembles a train's full live status report: every stop
// tagged against the current position, merged with simulated delays, crowd
// heuristics, and a position snapshot.
package timeline
