package httpx

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth responds to liveness probes. HEAD requests get headers only.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
