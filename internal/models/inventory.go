package models

// InventoryRow represents a stock record linking a catalog item to its on-hand
// quantity and capacity, as served by the inventory API.
type InventoryRow struct {
	ID            int    `json:"id"`
	ItemName      string `json:"item_name"`
	AmountInStock int    `json:"amount_in_stock"`
	TotalCapacity int    `json:"total_capacity"`
}

type NewInventoryRow struct {
	Item     int `json:"item"`
	Stock    int `json:"stock"`
	Capacity int `json:"capacity"`
}

// InventoryUpdate carries the numeric values of a submitted update form.
type InventoryUpdate struct {
	Stock    float64 `json:"stock"`
	Capacity float64 `json:"capacity"`
}

// UpdateForm holds the raw text of the update inputs until it is submitted.
type UpdateForm struct {
	ID    string `json:"id"`
	Stock string `json:"stock"`
	Cap   string `json:"cap"`
}

// Complete reports whether every field has been filled in.
func (f UpdateForm) Complete() bool {
	return f.ID != "" && f.Stock != "" && f.Cap != ""
}

type QueryResult struct {
	Title string         `json:"title"`
	Rows  []InventoryRow `json:"rows"`
}
