package handlers

type AddCandyRequest struct {
	Name string `json:"name"`
}

// UpdateInventoryRequest carries the update inputs as typed, numbers included.
type UpdateInventoryRequest struct {
	ID    string `json:"id"`
	Stock string `json:"stock"`
	Cap   string `json:"cap"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type liveEvent struct {
	Version   uint64 `json:"version"`
	Status    string `json:"status"`
	Inventory string `json:"inventory"`
	Query     string `json:"query"`
}
