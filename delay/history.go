package delay

import "time"

// historyCap bounds each (train, station) bucket. The oldest observation is
// evicted once the cap is exceeded.
const historyCap = 100

// Observation is one recorded simulated delay.
type Observation struct {
	Delay     int       `json:"delay"`
	Timestamp time.Time `json:"timestamp"`
}

// ring is a fixed-capacity FIFO of observations.
type ring struct {
	buf   [historyCap]Observation
	start int
	n     int
}

func (r *ring) append(o Observation) {
	if r.n < historyCap {
		r.buf[(r.start+r.n)%historyCap] = o
		r.n++
		return
	}
	r.buf[r.start] = o
	r.start = (r.start + 1) % historyCap
}

func (r *ring) len() int { return r.n }

// delays returns the buffered delay values oldest-first.
func (r *ring) delays() []int {
	out := make([]int, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.start+i)%historyCap].Delay
	}
	return out
}
