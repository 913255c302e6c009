package trainjatri

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// decodeBody parses a JSON request body into dst. An empty body leaves dst
// at its zero value; malformed JSON is an error.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
