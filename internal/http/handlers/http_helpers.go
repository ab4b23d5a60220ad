package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// sendSSE writes one SSE event and flushes. data is JSON-marshalled.
func sendSSE(w http.ResponseWriter, f http.Flusher, event string, data any) {
	b, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(b))
	f.Flush()
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// decodeInput fills dst from a JSON body or from form fields, depending on
// the request content type.
func decodeInput(w http.ResponseWriter, r *http.Request, dst any, fromForm func(get func(string) string)) error {
	if isJSON(r) {
		return readJSON(w, r, dst)
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to read form: %w", err)
	}
	fromForm(r.PostForm.Get)
	return nil
}

// actionContext detaches an action from the request so a client hanging up
// does not abort a call already sent to the inventory API.
func actionContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// respond finishes an action: JSON callers get the new state, browsers are
// sent back to the page.
func respond(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		if err := writeJSON(w, http.StatusOK, ctrl.Snapshot()); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
