package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
	"github.com/revendamais/plan-quoter/pkg/quote"
)

const freeLabel = "Free"

// RenderSummary renders the three-term comparison table for a quote,
// followed by the payment notes for each term.
func RenderSummary(q *quote.Quote, f *money.Formatter) string {
	terms := q.Terms()

	adhesion := []string{"Adhesion"}
	setup := []string{"Setup"}
	monthly := []string{"Monthly"}
	total := []string{"Total"}
	installments := []string{"Installments"}

	for _, v := range terms {
		if v.AdhesionWaived {
			adhesion = append(adhesion, SuccessStyle.Render(freeLabel))
		} else {
			adhesion = append(adhesion, f.Format(v.Adhesion))
		}
		setup = append(setup, f.Format(v.Setup))
		monthly = append(monthly, f.Format(v.RecurringRate))
		if v.Months == quote.TwelveMonths {
			total = append(total, HighlightTotalStyle.Render(f.Format(v.Total)))
		} else {
			total = append(total, TotalStyle.Render(f.Format(v.Total)))
		}
		installments = append(installments, fmt.Sprintf("%dx %s", v.Installments, f.Format(v.PerInstallment())))
	}

	rows := [][]string{adhesion}
	if !q.SetupExtra.IsZero() {
		rows = append(rows, setup)
	}
	rows = append(rows, monthly, total, installments)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorGray)).
		Headers("Item", termLabel(terms[0]), termLabel(terms[1]), termLabel(terms[2])).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true).Foreground(ColorMuted)
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(RenderMuted("1 month: adhesion + setup + first monthly fee.") + "\n")
	b.WriteString(RenderMuted("3 months: setup + monthly fee x 3, up to 3 card installments.") + "\n")
	b.WriteString(HighlightTotalStyle.Render("12 months: setup + annual monthly fee x 12, up to 12 card installments.") + "\n")

	return b.String()
}

// RenderLines renders the itemised lines of a quote.
func RenderLines(q *quote.Quote, f *money.Formatter) string {
	var b strings.Builder
	for _, l := range q.Lines {
		name := l.Name
		if l.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", l.Name, l.Quantity)
		}
		b.WriteString(fmt.Sprintf("  %-45s %14s", name, f.Format(l.Monthly)))
		if !l.Annual.Equal(l.Monthly) {
			b.WriteString(SuccessStyle.Render(fmt.Sprintf("  annual %s", f.Format(l.Annual))))
		}
		switch {
		case !l.OneTime.IsZero():
			b.WriteString(fmt.Sprintf("  + setup %s", f.Format(l.OneTime)))
		case l.Family == catalog.FamilyWebsite:
			b.WriteString(WarningStyle.Render("  setup waived"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func termLabel(v quote.TermView) string {
	if v.Months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", v.Months)
}
