package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type queryButton struct {
	Title string
	Label string
	Slug  string
}

type pageData struct {
	State     view.Snapshot
	Queries   []queryButton
	ExportURL string
}

func newPageData(state view.Snapshot) pageData {
	queries := make([]queryButton, 0, len(view.QuickQueries))
	for _, title := range view.QuickQueries {
		queries = append(queries, queryButton{
			Title: title,
			Label: view.QueryLabel(title),
			Slug:  view.QuerySlug(title),
		})
	}
	return pageData{State: state, Queries: queries, ExportURL: exportURL}
}

// renderLive re-renders the page fragments that follow the view state. The
// forms are left alone so typed input survives updates.
func renderLive(state view.Snapshot) (liveEvent, error) {
	data := newPageData(state)
	ev := liveEvent{Version: state.Version}

	fragments := []struct {
		name string
		dst  *string
	}{
		{"status", &ev.Status},
		{"inventory", &ev.Inventory},
		{"query", &ev.Query},
	}
	for _, f := range fragments {
		var buf bytes.Buffer
		if err := pageTemplates.ExecuteTemplate(&buf, f.name, data); err != nil {
			return liveEvent{}, err
		}
		*f.dst = buf.String()
	}
	return ev, nil
}

// PageHandler godoc
// @Summary Render the inventory page
// @Tags page
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {string} string "Internal error"
// @Router / [get]
func PageHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index", newPageData(ctrl.Snapshot())); err != nil {
		log.Printf("could not render page: %v", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
