// Package health serves the liveness probe on the operations listener.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/ctfkit/teapot-webservice/internal/platform/respond"
)

// Path is where the probe is mounted.
const Path = "/healthz"

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler reports the service as healthy along with its build version.
func Handler(version string) http.HandlerFunc {
	body := Response{Status: "ok", Version: version}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			respond.MethodNotAllowed(w, r, http.MethodGet, http.MethodHead)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}
