package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/mmcdole/filmfusion/internal/catalog"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// maxPageButtons caps how many page numbers are shown at once
const maxPageButtons = 7

// Pagination renders the page bar under the grid
type Pagination struct {
	pager paginator.Model
}

// NewPagination creates a pagination bar sized for catalog pages
func NewPagination() Pagination {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = catalog.PageSize
	p.ActiveDot = styles.AccentStyle.Render("•")
	p.InactiveDot = styles.DimStyle.Render("•")
	return Pagination{pager: p}
}

// Sync mirrors a catalog result into the bar
func (p *Pagination) Sync(r catalog.Result) {
	// SetTotalPages ignores an empty list
	if len(r.Filtered) == 0 {
		p.pager.TotalPages = 1
	} else {
		p.pager.SetTotalPages(len(r.Filtered))
	}
	if r.Page > 0 {
		p.pager.Page = r.Page - 1
	} else {
		p.pager.Page = 0
	}
}

// Page returns the current page, 1-based
func (p Pagination) Page() int {
	return p.pager.Page + 1
}

// TotalPages returns the number of pages
func (p Pagination) TotalPages() int {
	return p.pager.TotalPages
}

// View renders "‹ 1 2 [3] 4 ›  • • ● •"
func (p Pagination) View() string {
	total := p.pager.TotalPages
	if total <= 1 {
		return ""
	}
	current := p.pager.Page + 1

	start, end := pageWindow(current, total)
	var parts []string
	if p.pager.OnFirstPage() {
		parts = append(parts, styles.DimStyle.Render("‹ prev"))
	} else {
		parts = append(parts, styles.SubtitleStyle.Render("‹ prev"))
	}
	if start > 1 {
		parts = append(parts, styles.DimStyle.Render("…"))
	}
	for n := start; n <= end; n++ {
		label := fmt.Sprintf("%d", n)
		if n == current {
			parts = append(parts, styles.PageActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.PageStyle.Render(label))
		}
	}
	if end < total {
		parts = append(parts, styles.DimStyle.Render("…"))
	}
	if p.pager.OnLastPage() {
		parts = append(parts, styles.DimStyle.Render("next ›"))
	} else {
		parts = append(parts, styles.SubtitleStyle.Render("next ›"))
	}

	bar := strings.Join(parts, " ")
	if total <= 20 {
		bar += "   " + p.pager.View()
	}
	return bar
}

// pageWindow returns the first and last page number to show around current
func pageWindow(current, total int) (int, int) {
	if total <= maxPageButtons {
		return 1, total
	}
	start := current - maxPageButtons/2
	start = max(1, min(start, total-maxPageButtons+1))
	return start, start + maxPageButtons - 1
}
