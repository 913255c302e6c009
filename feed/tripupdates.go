package feed

import (
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/schedule"
)

const gtfsRealtimeVersion = "2.0"

// BuildTripUpdates assembles a FeedMessage with one TripUpdate per train,
// each stop carrying the simulated delay in seconds. An empty trainFilter
// includes every known train.
func BuildTripUpdates(snap *schedule.Snapshot, delays *delay.Model, now time.Time, trainFilter string) *gtfsrtpb.FeedMessage {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
	}

	for _, trainNumber := range snap.TrainNumbers() {
		if trainFilter != "" && trainNumber != trainFilter {
			continue
		}
		route, ok := snap.Route(trainNumber)
		if !ok || len(route) == 0 {
			continue
		}

		tu := &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String(trainNumber)},
		}
		for i, stop := range delays.SimulateRoute(route, now) {
			stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{
				StopSequence: proto.Uint32(uint32(i + 1)),
				StopId:       proto.String(stop.City),
			}
			if stop.SimulatedDelay != nil {
				seconds := int32(stop.SimulatedDelay.DelayMinutes * 60)
				stu.Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{Delay: proto.Int32(seconds)}
				stu.Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{Delay: proto.Int32(seconds)}
			}
			tu.StopTimeUpdate = append(tu.StopTimeUpdate, stu)
		}

		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id:         proto.String(trainNumber),
			TripUpdate: tu,
		})
	}
	return fm
}

// Marshal serializes a FeedMessage to protobuf wire format.
func Marshal(fm *gtfsrtpb.FeedMessage) ([]byte, error) {
	return proto.Marshal(fm)
}
