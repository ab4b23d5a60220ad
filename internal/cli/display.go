package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
)

const tableWidth = 56

var (
	accentPrimary   = lipgloss.Color("#F06292")
	accentSecondary = lipgloss.Color("#FFD54F")
	mutedText       = lipgloss.Color("#8CA1AE")
	warningText     = lipgloss.Color("#FF6B6B")
	panelBorder     = lipgloss.Color("#AD1457")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentSecondary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedText)

	errorStyle = lipgloss.NewStyle().
			Foreground(warningText).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)
)

func renderTable(title string, rows []models.InventoryRow) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %-28s %8s %8s", "INV ID", "ITEM", "STOCK", "CAP.")))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", tableWidth)))

	if len(rows) == 0 {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("No rows."))
	}
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%-8d %-28s %8d %8d", r.ID, truncate(r.ItemName, 28), r.AmountInStock, r.TotalCapacity))
	}
	return panelStyle.Render(sb.String())
}

func renderError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

func renderNote(msg string) string {
	return mutedStyle.Render(msg)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
