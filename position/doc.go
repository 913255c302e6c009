// Package position estimates where a train is along its route from the
// schedule's clock times alone. The scan is time-of-day only: dates are
// ignored and overnight routes wrap, which is accepted behavior for this
// data set.
package position
