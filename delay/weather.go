package delay

import "time"

// WeatherCondition draws a simulated weather label from a fixed weighted
// distribution. Day hours favor clear/cloudy/rainy, night hours
// clear/cloudy/foggy. The location is accepted for interface parity with a
// real weather feed but does not influence the draw; that is a known
// simplification of the model, not a defect.
func (m *Model) WeatherCondition(location string, now time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.rng.Float64()
	if h := now.Hour(); h >= 6 && h <= 18 {
		switch {
		case r < 0.6:
			return "clear"
		case r < 0.9:
			return "cloudy"
		default:
			return "rainy"
		}
	}
	switch {
	case r < 0.7:
		return "clear"
	case r < 0.9:
		return "cloudy"
	default:
		return "foggy"
	}
}
