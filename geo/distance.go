package geo

import (
	"math"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// EarthRadiusKM is the mean Earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// Coordinate is a geographic point as (longitude, latitude) in degrees,
// matching the [lon, lat] ordering of the station data files.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Distance returns the great-circle distance between two points in
// kilometers, rounded to two decimal places.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return utils.RoundTo(EarthRadiusKM*c, 2)
}

// RouteDistance returns the length of a polyline through the given points as
// the sum of consecutive pairwise distances, rounded to two decimal places.
// Fewer than two points yield 0.
func RouteDistance(points []Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += Distance(points[i], points[i+1])
	}
	return utils.RoundTo(total, 2)
}
