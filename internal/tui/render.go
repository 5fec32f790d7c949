package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/storegenius/storegenius/internal/enrich"
)

var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")).
			MarginTop(1)

	productStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Faint(true).
			PaddingLeft(4)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")).
			Faint(true).
			PaddingLeft(4)
)

// RenderCategories formats an enrichment result for terminal output.
func RenderCategories(categories []enrich.EnrichedCategory) string {
	var b strings.Builder
	for _, category := range categories {
		b.WriteString(categoryStyle.Render(category.Category))
		b.WriteString("\n")
		for _, product := range category.Products {
			b.WriteString(productStyle.Render(product.Name))
			b.WriteString("\n")
			if product.Image != nil {
				b.WriteString(imageStyle.Render(*product.Image))
			} else {
				b.WriteString(missingStyle.Render("no image found"))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
