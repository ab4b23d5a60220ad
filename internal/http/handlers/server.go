package handlers

import (
	"context"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

// Controller is the part of the view controller the handlers drive.
type Controller interface {
	Snapshot() view.Snapshot
	Subscribe() (<-chan uint64, func())
	Refresh(ctx context.Context) error
	SetNewName(name string)
	AddCandy(ctx context.Context) error
	SetUpdateForm(form models.UpdateForm)
	UpdateInventory(ctx context.Context) error
	DeleteRow(ctx context.Context, id int) error
	RunQuery(ctx context.Context, title string) error
}

var (
	ctrl      Controller
	exportURL string
)

func SetController(c Controller) {
	ctrl = c
}

// SetExportURL sets the backend CSV export address the page links to.
func SetExportURL(u string) {
	exportURL = u
}
