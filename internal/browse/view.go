package browse

import (
	"fmt"
	"strconv"
	"strings"

	"paporium/internal/core/filter"
	"paporium/internal/services/catalog/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	ocStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	detailBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	keyHelp       = "/ search  f facet  [ ] value  space toggle  o overcharge  p pricing  n/b page  a all  c clear  r reset  enter detail  q quit"
	listHeadWidth = 12
)

// View renders the current frame
func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("paporium"))
	if a.sess != nil {
		b.WriteString(" " + dimStyle.Render("?"+a.sess.Params().Encode()))
	}
	b.WriteString("\n")

	prompt := dimStyle.Render("/ ")
	if a.typing {
		prompt = titleStyle.Render("/ ")
	}
	b.WriteString(prompt + a.input.View() + "\n")
	if a.sess != nil {
		b.WriteString(a.renderFacets())
	}
	b.WriteString("\n")

	switch {
	case a.detail != nil:
		b.WriteString(renderDetail(*a.detail))
	default:
		b.WriteString(a.renderList())
	}

	b.WriteString("\n")
	if a.loading {
		b.WriteString(a.spinner.View() + " " + a.status + "\n")
	}
	if a.err != nil {
		b.WriteString(errorStyle.Render("error: "+a.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render(keyHelp))
	return b.String()
}

func (a App) renderList() string {
	var b strings.Builder
	list := a.page.List
	rows := list.Items
	limit := len(rows)
	if a.height > 10 {
		limit = min(limit, a.height-10)
	}
	start := 0
	if a.cursor >= limit && limit > 0 {
		start = a.cursor - limit + 1
	}
	for i := start; i < min(start+limit, len(rows)); i++ {
		line := renderRow(rows[i])
		if i == a.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(rows) == 0 && a.sess != nil && !a.loading {
		b.WriteString(dimStyle.Render("no items") + "\n")
		for _, s := range list.Suggestions {
			b.WriteString(fmt.Sprintf("  did you mean %s (%d)?\n", s.Name, s.ID))
		}
	}
	p := a.page.Page
	if p.Pages > 0 {
		var win []string
		for _, n := range p.Window {
			s := strconv.Itoa(n)
			if n == p.Page {
				s = titleStyle.Render("[" + s + "]")
			}
			win = append(win, s)
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d items, page %d/%d ", p.Total, p.Page, p.Pages)) + strings.Join(win, " ") + "\n")
	}
	return b.String()
}

// renderFacets shows a checked count for every facet and the values of the
// focused one
func (a App) renderFacets() string {
	var b strings.Builder
	eff := a.sess.Effective()
	focused := a.focusedName()
	var heads []string
	for _, name := range filter.FacetNames {
		head := fmt.Sprintf("%s %d/%d", name, len(eff.Facet(name).Selected()), len(eff.Facet(name)))
		if name == focused {
			head = titleStyle.Render(head)
		} else {
			head = dimStyle.Render(head)
		}
		heads = append(heads, head)
	}
	b.WriteString(strings.Join(heads, "  ") + "\n")

	var vals []string
	for i, v := range eff.Facet(focused) {
		box := "[ ]"
		if v.IsChecked() {
			box = "[x]"
		}
		label := v.Label()
		if label == "" {
			label = strconv.FormatInt(v.ID, 10)
		}
		cell := box + " " + label
		if i == a.facetValue {
			cell = cursorStyle.Render(cell)
		}
		vals = append(vals, cell)
	}
	if len(vals) == 0 {
		vals = append(vals, dimStyle.Render("no values"))
	}
	b.WriteString("  " + strings.Join(vals, "  ") + "\n")
	return b.String()
}

func renderRow(r domain.ItemRow) string {
	oc := " "
	if r.Overcharge {
		oc = ocStyle.Render("$")
	}
	return fmt.Sprintf("%s %-*d %-32s %-10s %8d %8d", oc, 6, r.ID, clip(r.Name, 32), clip(r.ItemType, listHeadWidth-2), r.Buy, r.Sell)
}

func renderDetail(d domain.ItemDetail) string {
	var b strings.Builder
	it := d.Item
	fmt.Fprintf(&b, "%s  #%d  %s\n", titleStyle.Render(it.Name), it.ID, it.ItemType)
	fmt.Fprintf(&b, "buy %d  sell %d  weight %d", it.Buy, it.Sell, it.Weight)
	if it.Overcharge {
		b.WriteString("  " + ocStyle.Render("overcharge"))
	}
	b.WriteString("\n")

	for _, r := range d.Recipes {
		fmt.Fprintf(&b, "\n%s %s", titleStyle.Render(r.Name), dimStyle.Render(r.RecipeType))
		if r.Job != "" {
			b.WriteString(dimStyle.Render(" · " + r.Job))
		}
		b.WriteString("\n")
		for _, l := range r.Ingredients {
			fmt.Fprintf(&b, "  - %dx %s\n", l.Quantity, l.ItemName)
		}
		for _, l := range r.Products {
			fmt.Fprintf(&b, "  + %dx %s\n", l.Quantity, l.ItemName)
		}
	}
	if len(d.MobDrops)+len(d.MvpDrops) > 0 {
		b.WriteString("\ndrops\n")
		for _, dr := range append(append([]domain.Drop(nil), d.MobDrops...), d.MvpDrops...) {
			fmt.Fprintf(&b, "  %-24s %6.2f%%\n", clip(dr.Mob, 24), float64(dr.Rate)/100)
		}
	}
	if len(d.Shops) > 0 {
		b.WriteString("\nshops\n")
		for _, s := range d.Shops {
			fmt.Fprintf(&b, "  %-24s %s %d,%d\n", clip(s.Npc, 24), s.Map, s.X, s.Y)
		}
	}
	return detailBox.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n-1, 0)]) + "…"
}
