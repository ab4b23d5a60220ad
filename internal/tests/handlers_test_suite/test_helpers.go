package handlers_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/apiclient"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/handlers"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

var (
	backend   *fakeBackend
	client    *apiclient.Client
	ctrl      *view.Controller
	exportURL string
)

func init() {
	backend = newFakeBackend()
	srv := httptest.NewServer(backend.routes())

	client = apiclient.New(srv.URL, "", srv.Client())
	exportURL = client.ExportURL("inventory")
	handlers.SetExportURL(exportURL)
	resetState()
}

// fakeBackend is an in-memory stand-in for the inventory API.
type fakeBackend struct {
	mu        sync.Mutex
	items     []models.Item
	inventory []models.InventoryRow
	requests  []string
	nextItem  int
	nextRow   int
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{}
	b.reset()
	return b
}

func (b *fakeBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = []models.Item{{ID: 1, Name: "Lollipop"}, {ID: 2, Name: "Gummy Bears"}, {ID: 3, Name: "Toffee"}}
	b.inventory = []models.InventoryRow{
		{ID: 3, ItemName: "Toffee", AmountInStock: 120, TotalCapacity: 100},
		{ID: 1, ItemName: "Lollipop", AmountInStock: 0, TotalCapacity: 50},
		{ID: 2, ItemName: "Gummy Bears", AmountInStock: 5, TotalCapacity: 100},
	}
	b.requests = nil
	b.nextItem = 4
	b.nextRow = 4
}

func (b *fakeBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) clearSeen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *fakeBackend) row(id int) (models.InventoryRow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.inventory {
		if r.ID == id {
			return r, true
		}
	}
	return models.InventoryRow{}, false
}

func (b *fakeBackend) findRowByItem(name string) (models.InventoryRow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.inventory {
		if r.ItemName == name {
			return r, true
		}
	}
	return models.InventoryRow{}, false
}

func badRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	track := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.requests = append(b.requests, r.Method+" "+r.URL.Path)
			b.mu.Unlock()
			h(w, r)
		}
	}

	mux.HandleFunc("GET /items", track(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.items)
	}))

	mux.HandleFunc("POST /items", track(func(w http.ResponseWriter, r *http.Request) {
		var req models.NewItem
		json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		defer b.mu.Unlock()
		for _, it := range b.items {
			if strings.EqualFold(it.Name, req.Name) {
				badRequest(w, "item already exists")
				return
			}
		}
		item := models.Item{ID: b.nextItem, Name: req.Name}
		b.nextItem++
		b.items = append(b.items, item)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.CreatedItem{ID: item.ID})
	}))

	mux.HandleFunc("GET /inventory", track(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.inventory)
	}))

	mux.HandleFunc("POST /inventory", track(func(w http.ResponseWriter, r *http.Request) {
		var req models.NewInventoryRow
		json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		defer b.mu.Unlock()
		var name string
		for _, it := range b.items {
			if it.ID == req.Item {
				name = it.Name
			}
		}
		if name == "" {
			badRequest(w, fmt.Sprintf("item %d not found", req.Item))
			return
		}
		row := models.InventoryRow{ID: b.nextRow, ItemName: name, AmountInStock: req.Stock, TotalCapacity: req.Capacity}
		b.nextRow++
		b.inventory = append(b.inventory, row)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int{"id": row.ID})
	}))

	mux.HandleFunc("PUT /inventory/{id}", track(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		var req struct {
			Stock    json.Number `json:"stock"`
			Capacity json.Number `json:"capacity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid body")
			return
		}
		stock, err1 := req.Stock.Int64()
		capacity, err2 := req.Capacity.Int64()
		if err1 != nil || err2 != nil {
			badRequest(w, "stock and capacity must be integers")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for i, row := range b.inventory {
			if row.ID == id {
				b.inventory[i].AmountInStock = int(stock)
				b.inventory[i].TotalCapacity = int(capacity)
				json.NewEncoder(w).Encode(b.inventory[i])
				return
			}
		}
		badRequest(w, fmt.Sprintf("inventory %d not found", id))
	}))

	mux.HandleFunc("DELETE /inventory/{id}", track(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))

		b.mu.Lock()
		defer b.mu.Unlock()
		for i, row := range b.inventory {
			if row.ID == id {
				b.inventory = append(b.inventory[:i], b.inventory[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		badRequest(w, fmt.Sprintf("inventory %d not found", id))
	}))

	query := func(keep func(models.InventoryRow) bool) http.HandlerFunc {
		return track(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			rows := []models.InventoryRow{}
			for _, row := range b.inventory {
				if keep(row) {
					rows = append(rows, row)
				}
			}
			json.NewEncoder(w).Encode(rows)
		})
	}
	mux.HandleFunc("GET /inventory/out-of-stock", query(func(r models.InventoryRow) bool {
		return r.AmountInStock == 0
	}))
	mux.HandleFunc("GET /inventory/low-stock", query(func(r models.InventoryRow) bool {
		return r.AmountInStock > 0 && r.AmountInStock < 100
	}))
	mux.HandleFunc("GET /inventory/overstocked", query(func(r models.InventoryRow) bool {
		return r.AmountInStock > r.TotalCapacity
	}))

	return mux
}

// resetState restores the backend and swaps in a fresh controller loaded
// from it, so no query panel, banner or form survives between tests.
func resetState() {
	backend.reset()
	ctrl = view.NewController(client, nil)
	handlers.SetController(ctrl)
	ctrl.Refresh(context.Background())
	backend.clearSeen()
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	var payload string
	if body != nil {
		b, _ := json.Marshal(body)
		payload = string(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(w *httptest.ResponseRecorder) (view.Snapshot, error) {
	var state view.Snapshot
	err := json.NewDecoder(w.Body).Decode(&state)
	return state, err
}

func ids(rows []models.InventoryRow) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
