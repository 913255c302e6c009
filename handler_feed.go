package trainjatri

import (
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/feed"
)

func (a *App) handleTripUpdates(w http.ResponseWriter, r *http.Request) {
	fm := feed.BuildTripUpdates(a.Schedule.Snapshot(), a.Delays, time.Now(), queryParam(r, "train"))
	raw, err := feed.Marshal(fm)
	if err != nil {
		log.Printf("marshaling trip updates: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to build feed")
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}
