package handlers

import (
	"log"
	"net/http"
	"time"
)

const keepAliveInterval = 15 * time.Second

// GetStateHandler godoc
// @Summary Current view state
// @Tags state
// @Produce json
// @Success 200 {object} view.Snapshot
// @Router /state [get]
func GetStateHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, ctrl.Snapshot()); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// EventsHandler godoc
// @Summary Stream view changes
// @Description Server-sent events. Each "state" event carries the state version and the re-rendered status, inventory and query fragments of the page.
// @Tags state
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 500 {string} string "Streaming unsupported"
// @Router /events [get]
func EventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	changes, cancel := ctrl.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if !sendState(w, flusher) {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if !sendState(w, flusher) {
				return
			}
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func sendState(w http.ResponseWriter, f http.Flusher) bool {
	ev, err := renderLive(ctrl.Snapshot())
	if err != nil {
		log.Printf("could not render live view: %v", err)
		return false
	}
	sendSSE(w, f, "state", ev)
	return true
}

// HealthHandler godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
