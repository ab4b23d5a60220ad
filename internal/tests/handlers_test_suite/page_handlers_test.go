package handlers_test_suite

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	api "github.com/rogerio-castellano/candy-inventory-ui/internal/http"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

func TestPageHandler(t *testing.T) {
	r := api.NewRouter()
	t.Cleanup(resetState)
	resetState()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Candy Inventory 🍬",
		"Current Inventory",
		"Inv ID", "Cap.",
		"Download CSV",
		`action="/queries/out-of-stock"`,
		">Out<", ">Low<", ">Overstocked<",
		`placeholder="STOCK"`,
		`new EventSource('/events')`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}

	lolli := strings.Index(body, "Lollipop")
	toffee := strings.Index(body, "Toffee")
	if lolli < 0 || toffee < 0 || lolli > toffee {
		t.Error("expected inventory rows in id order")
	}
	if strings.Contains(body, "<th>S</th>") {
		t.Error("expected query table to be hidden when it has no rows")
	}
}

func TestPageHandler_SidebarSitsBesideInventory(t *testing.T) {
	r := api.NewRouter()
	t.Cleanup(resetState)
	resetState()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	body := w.Body.String()

	layout := strings.Index(body, `<div class="layout">`)
	main := strings.Index(body, `<section class="main"`)
	sidebar := strings.Index(body, `<aside class="sidebar">`)
	queries := strings.Index(body, "Quick Queries")
	closing := strings.Index(body, "<script>")
	if layout < 0 || main < 0 || sidebar < 0 || queries < 0 {
		t.Fatalf("expected layout, main and sidebar blocks in page, got %q", body)
	}
	if !(layout < main && main < sidebar && sidebar < queries && queries < closing) {
		t.Errorf("expected sidebar inside the layout after the inventory, got layout=%d main=%d sidebar=%d queries=%d",
			layout, main, sidebar, queries)
	}
	if strings.Count(body[layout:closing], `<div class="layout">`) != 1 {
		t.Error("expected a single layout container")
	}
}

func TestPageHandler_ShowsErrorAndQuery(t *testing.T) {
	r := api.NewRouter()
	t.Cleanup(resetState)
	resetState()

	postJSON(r, "/queries/low-stock", nil)
	postJSON(r, "/inventory/77/delete", nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `class="error"`) || !strings.Contains(body, "inventory 77 not found") {
		t.Error("expected error banner with backend message")
	}
	if !strings.Contains(body, "<h3 style=\"margin-top: 12px\">Low Stock</h3>") {
		t.Error("expected query panel titled Low Stock")
	}
}

func TestPageHandler_NoLeftoversFromEarlierActions(t *testing.T) {
	r := api.NewRouter()
	t.Cleanup(resetState)
	resetState()

	postJSON(r, "/queries/out-of-stock", nil)
	postJSON(r, "/inventory/77/delete", nil)
	postForm(r, "/inventory/update", url.Values{"id": {"5"}})
	resetState()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if strings.Contains(body, "<th>S</th>") {
		t.Error("expected no query table in a fresh view")
	}
	if strings.Contains(body, `class="error"`) {
		t.Error("expected no error banner in a fresh view")
	}
	if strings.Contains(body, `name="id" value="5"`) {
		t.Error("expected an empty update form in a fresh view")
	}
}

func TestGetStateHandler(t *testing.T) {
	r := api.NewRouter()
	t.Cleanup(resetState)
	resetState()

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var state view.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(state.Inventory) != 3 {
		t.Errorf("expected 3 rows, got %d", len(state.Inventory))
	}
}

func TestEventsHandler(t *testing.T) {
	t.Cleanup(resetState)
	resetState()

	srv := httptest.NewServer(api.NewRouter())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	events := make(chan liveEvent, 4)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		var name string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: ") && name == "state":
				var ev liveEvent
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err == nil {
					events <- ev
				}
			}
		}
	}()

	first := <-events
	if !strings.Contains(first.Inventory, "Lollipop") {
		t.Errorf("expected initial event to render the inventory, got %q", first.Inventory)
	}
	if strings.Contains(first.Inventory, "Quick Queries") || strings.Contains(first.Query, "<form") {
		t.Error("expected events to leave the sidebar forms alone")
	}

	ctrl.ApplyPush([]byte(`[{"id":9,"item_name":"Fudge","amount_in_stock":1,"total_capacity":10}]`))

	for ev := range events {
		if ev.Version <= first.Version {
			t.Errorf("expected version to grow, got %d after %d", ev.Version, first.Version)
		}
		if strings.Contains(ev.Inventory, "Fudge") {
			return
		}
	}
	t.Error("expected an event with the pushed inventory")
}

type liveEvent struct {
	Version   uint64 `json:"version"`
	Status    string `json:"status"`
	Inventory string `json:"inventory"`
	Query     string `json:"query"`
}

func TestHealthMetricsAndDocs(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", `"status":"ok"`},
		{"/metrics", "candy_ui_http_requests_total"},
		{"/swagger/doc.json", "Candy Inventory UI"},
	}

	// one request first so the request counter has a sample
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("expected body to contain %q", tt.want)
			}
		})
	}
}
