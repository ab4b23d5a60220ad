package view

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/metrics"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
)

const (
	DefaultStock    = 0
	DefaultCapacity = 100
)

var ErrItemNotResolved = errors.New("could not create item")

// Gateway is the subset of the inventory API client the controller needs.
type Gateway interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Streamer delivers raw push payloads until ctx is done.
type Streamer interface {
	Stream(ctx context.Context, handle func([]byte)) error
}

// Snapshot is an immutable copy of the view state.
type Snapshot struct {
	Inventory  []models.InventoryRow `json:"inventory"`
	Query      models.QueryResult    `json:"query"`
	NewName    string                `json:"new_name"`
	UpdateForm models.UpdateForm     `json:"update_form"`
	Error      string                `json:"error"`
	Loading    bool                  `json:"loading"`
	Version    uint64                `json:"version"`
}

// Controller holds the UI state and orchestrates requests against the API.
// It is safe for concurrent use.
type Controller struct {
	api    Gateway
	stream Streamer

	mu        sync.Mutex
	inventory []models.InventoryRow
	query     models.QueryResult
	newName   string
	form      models.UpdateForm
	errMsg    string
	inflight  int

	// seq numbers every inventory fetch and push; applied is the newest one
	// whose result made it into state.
	seq     uint64
	applied uint64

	version  uint64
	watchers map[chan uint64]struct{}
}

func NewController(api Gateway, stream Streamer) *Controller {
	return &Controller{
		api:       api,
		stream:    stream,
		inventory: []models.InventoryRow{},
		watchers:  make(map[chan uint64]struct{}),
	}
}

// Mount runs the initial load and opens the push stream. The returned function
// closes the stream and waits for every goroutine started here.
func (c *Controller) Mount(ctx context.Context) (unmount func()) {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Refresh(ctx)
	}()

	if c.stream != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.stream.Stream(ctx, func(payload []byte) {
				_ = c.ApplyPush(payload)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("inventory stream closed: %v", err)
			}
		}()
	}

	return func() {
		cancel()
		wg.Wait()
	}
}

// Refresh fetches the full inventory. A successful refresh clears the error.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetchInventory(ctx, true)
}

func (c *Controller) fetchInventory(ctx context.Context, clearErr bool) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inflight++
	c.notifyLocked()
	c.mu.Unlock()

	var rows []models.InventoryRow
	err := c.api.Get(ctx, "/inventory", &rows)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	defer c.notifyLocked()

	if err != nil {
		// a newer snapshot is already on screen
		if seq >= c.applied {
			c.errMsg = err.Error()
		}
		return err
	}
	c.applyInventoryLocked(seq, rows, metrics.SourceFetch)
	if clearErr {
		c.errMsg = ""
	}
	return nil
}

// ApplyPush replaces the inventory with a pushed snapshot. A malformed payload
// is logged and leaves the state and the error untouched.
func (c *Controller) ApplyPush(payload []byte) error {
	var rows []models.InventoryRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		log.Printf("bad inventory push payload: %v", err)
		metrics.Snapshots.WithLabelValues(metrics.SourcePush, metrics.SnapshotMalformed).Inc()
		return fmt.Errorf("failed to decode push payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.applyInventoryLocked(c.seq, rows, metrics.SourcePush)
	c.notifyLocked()
	return nil
}

func (c *Controller) applyInventoryLocked(seq uint64, rows []models.InventoryRow, source string) {
	if seq < c.applied {
		metrics.Snapshots.WithLabelValues(source, metrics.SnapshotStale).Inc()
		return
	}
	c.applied = seq
	c.inventory = sortByID(rows)
	metrics.Snapshots.WithLabelValues(source, metrics.SnapshotApplied).Inc()
}

func sortByID(rows []models.InventoryRow) []models.InventoryRow {
	sorted := make([]models.InventoryRow, len(rows))
	copy(sorted, rows)
	slices.SortStableFunc(sorted, func(a, b models.InventoryRow) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// Mutate runs a side-effecting operation and then refetches the inventory,
// whatever the outcome, so the view ends up server-authoritative.
func (c *Controller) Mutate(ctx context.Context, fn func(context.Context) error) error {
	return c.run(ctx, "custom", fn)
}

func (c *Controller) run(ctx context.Context, action string, fn func(context.Context) error) error {
	err := fn(ctx)
	metrics.Actions.WithLabelValues(action, metrics.Outcome(err)).Inc()

	c.mu.Lock()
	if err != nil {
		c.errMsg = err.Error()
	} else {
		c.errMsg = ""
	}
	c.notifyLocked()
	c.mu.Unlock()

	fetchErr := c.fetchInventory(ctx, false)
	if err != nil {
		return err
	}
	return fetchErr
}

func (c *Controller) SetNewName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.newName = name
	c.notifyLocked()
}

// AddCandy creates an inventory row with default stock and capacity for the
// entered name, creating the catalog item first when needed.
func (c *Controller) AddCandy(ctx context.Context) error {
	c.mu.Lock()
	name := strings.TrimSpace(c.newName)
	c.mu.Unlock()
	if name == "" {
		return nil
	}

	return c.run(ctx, "add_candy", func(ctx context.Context) error {
		id, err := c.ensureItem(ctx, name)
		if err != nil {
			return err
		}
		if id == 0 {
			return ErrItemNotResolved
		}

		row := models.NewInventoryRow{Item: id, Stock: DefaultStock, Capacity: DefaultCapacity}
		if err := c.api.Post(ctx, "/inventory", row, nil); err != nil {
			return err
		}

		c.mu.Lock()
		c.newName = ""
		c.notifyLocked()
		c.mu.Unlock()
		return nil
	})
}

// ensureItem creates the item, falling back to a case-insensitive lookup when
// creation fails (typically because the name already exists). Zero means no
// id could be resolved.
func (c *Controller) ensureItem(ctx context.Context, name string) (int, error) {
	var created models.CreatedItem
	if err := c.api.Post(ctx, "/items", models.NewItem{Name: name}, &created); err == nil {
		return created.ID, nil
	}

	var items []models.Item
	if err := c.api.Get(ctx, "/items", &items); err != nil {
		return 0, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it.ID, nil
		}
	}
	return 0, nil
}

func (c *Controller) SetUpdateForm(form models.UpdateForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
	c.notifyLocked()
}

// UpdateInventory submits the update form. An incomplete form is ignored
// silently; a complete one is cleared before the request is sent.
func (c *Controller) UpdateInventory(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	if !form.Complete() {
		c.mu.Unlock()
		return nil
	}
	c.form = models.UpdateForm{}
	c.notifyLocked()
	c.mu.Unlock()

	return c.run(ctx, "update", func(ctx context.Context) error {
		stock, err := parseNumber(form.Stock)
		if err != nil {
			return err
		}
		capacity, err := parseNumber(form.Cap)
		if err != nil {
			return err
		}
		update := models.InventoryUpdate{Stock: stock, Capacity: capacity}
		return c.api.Put(ctx, "/inventory/"+url.PathEscape(form.ID), update, nil)
	})
}

// parseNumber converts form text the way a browser number coercion does for
// plain decimal input: surrounding space is ignored and blank means zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func (c *Controller) DeleteRow(ctx context.Context, id int) error {
	return c.run(ctx, "delete", func(ctx context.Context) error {
		return c.api.Delete(ctx, "/inventory/"+strconv.Itoa(id))
	})
}

// RunQuery loads one of the quick queries into the query panel.
func (c *Controller) RunQuery(ctx context.Context, title string) error {
	return c.run(ctx, "query", func(ctx context.Context) error {
		var rows []models.InventoryRow
		if err := c.api.Get(ctx, QueryPath(title), &rows); err != nil {
			return err
		}

		c.mu.Lock()
		c.query = models.QueryResult{Title: title, Rows: rows}
		c.notifyLocked()
		c.mu.Unlock()
		return nil
	})
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Inventory: slices.Clone(c.inventory),
		Query: models.QueryResult{
			Title: c.query.Title,
			Rows:  slices.Clone(c.query.Rows),
		},
		NewName:    c.newName,
		UpdateForm: c.form,
		Error:      c.errMsg,
		Loading:    c.inflight > 0,
		Version:    c.version,
	}
}

// Subscribe returns a channel that receives the state version after every
// change. Slow readers only see the latest version. cancel releases it.
func (c *Controller) Subscribe() (changes <-chan uint64, cancel func()) {
	ch := make(chan uint64, 1)

	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.watchers, ch)
			c.mu.Unlock()
		})
	}
}

func (c *Controller) notifyLocked() {
	c.version++
	for ch := range c.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- c.version
	}
}
