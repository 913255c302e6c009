package trainjatri

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// envelope is the common response shape: every payload carries success and
// timestamp, failures add error.
type envelope map[string]any

func successEnvelope(fields envelope) envelope {
	body := envelope{
		"success":   true,
		"timestamp": utils.Iso8601Now(),
	}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

func respond(w http.ResponseWriter, status int, fields envelope) {
	writeJSON(w, status, successEnvelope(fields))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		"success":   false,
		"error":     message,
		"timestamp": utils.Iso8601Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Printf("encoding response: %v", err)
		http.Error(w, `{"success":false,"error":"internal encoding error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(raw)
}
