package models

// Item is a catalog entry, distinct from its inventory record.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type NewItem struct {
	Name string `json:"name"`
}

type CreatedItem struct {
	ID int `json:"id"`
}
