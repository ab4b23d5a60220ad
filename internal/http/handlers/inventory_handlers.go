package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

// RefreshHandler godoc
// @Summary Reload the inventory from the API
// @Tags inventory
// @Produce json
// @Success 200 {object} view.Snapshot "When Accept is application/json"
// @Success 303 {string} string "Redirect to the page"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if err := ctrl.Refresh(actionContext(r)); err != nil {
		log.Printf("refresh failed: %v", err)
	}
	respond(w, r)
}

// AddCandyHandler godoc
// @Summary Add a candy to the inventory
// @Description Creates the catalog item when needed, then an inventory row with stock 0 and capacity 100. A blank name is ignored.
// @Tags inventory
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param candy body AddCandyRequest true "Candy to add"
// @Success 200 {object} view.Snapshot "When Accept is application/json"
// @Success 303 {string} string "Redirect to the page"
// @Failure 400 {string} string "Invalid input"
// @Router /candy [post]
func AddCandyHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCandyRequest
	err := decodeInput(w, r, &req, func(get func(string) string) {
		req.Name = get("name")
	})
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	ctrl.SetNewName(req.Name)
	if err := ctrl.AddCandy(actionContext(r)); err != nil {
		log.Printf("add candy failed: %v", err)
	}
	respond(w, r)
}

// UpdateInventoryHandler godoc
// @Summary Update stock and capacity of an inventory row
// @Description The request is ignored when any field is empty.
// @Tags inventory
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param update body UpdateInventoryRequest true "Update form"
// @Success 200 {object} view.Snapshot "When Accept is application/json"
// @Success 303 {string} string "Redirect to the page"
// @Failure 400 {string} string "Invalid input"
// @Router /inventory/update [post]
func UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateInventoryRequest
	err := decodeInput(w, r, &req, func(get func(string) string) {
		req.ID = get("id")
		req.Stock = get("stock")
		req.Cap = get("cap")
	})
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	ctrl.SetUpdateForm(models.UpdateForm{ID: req.ID, Stock: req.Stock, Cap: req.Cap})
	if err := ctrl.UpdateInventory(actionContext(r)); err != nil {
		log.Printf("update inventory failed: %v", err)
	}
	respond(w, r)
}

// DeleteInventoryHandler godoc
// @Summary Delete an inventory row
// @Tags inventory
// @Produce json
// @Param id path int true "Inventory row ID"
// @Success 200 {object} view.Snapshot "When Accept is application/json"
// @Success 303 {string} string "Redirect to the page"
// @Failure 400 {string} string "Invalid ID"
// @Router /inventory/{id}/delete [post]
func DeleteInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	if err := ctrl.DeleteRow(actionContext(r), id); err != nil {
		log.Printf("delete inventory %d failed: %v", id, err)
	}
	respond(w, r)
}

// RunQueryHandler godoc
// @Summary Run a quick query
// @Tags queries
// @Produce json
// @Param slug path string true "Query" Enums(out-of-stock, low-stock, overstocked)
// @Success 200 {object} view.Snapshot "When Accept is application/json"
// @Success 303 {string} string "Redirect to the page"
// @Failure 404 {string} string "Unknown query"
// @Router /queries/{slug} [post]
func RunQueryHandler(w http.ResponseWriter, r *http.Request) {
	title, ok := view.FindQuery(chi.URLParam(r, "slug"))
	if !ok {
		http.Error(w, "unknown query", http.StatusNotFound)
		return
	}

	if err := ctrl.RunQuery(actionContext(r), title); err != nil {
		log.Printf("query %q failed: %v", title, err)
	}
	respond(w, r)
}

// ExportHandler godoc
// @Summary Download the inventory as CSV
// @Description Redirects to the CSV export of the inventory API.
// @Tags inventory
// @Success 302 {string} string "Redirect to the export"
// @Router /export [get]
func ExportHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, exportURL, http.StatusFound)
}
