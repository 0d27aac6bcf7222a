package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
	"github.com/revendamais/plan-quoter/pkg/quote"
)

type section int

const (
	sectionPlans section = iota
	sectionServices
	sectionWebsite
	sectionCrm
	sectionExtras
	sectionCount
)

var sectionTitles = [sectionCount]string{
	"1. Plan",
	"2. Additional services",
	"3. Website",
	"4. CRM",
	"5. Extras",
}

// PublishFunc sends a computed quote somewhere (e.g. a NATS subject).
type PublishFunc func(sel quote.Selection, q *quote.Quote) error

// publishedMsg reports the outcome of an asynchronous publish.
type publishedMsg struct {
	err error
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Select   key.Binding
	Waive    key.Binding
	Increase key.Binding
	Decrease key.Binding
	Publish  key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next section")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev section")),
		Select:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select")),
		Waive:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "waive website fee")),
		Increase: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "quantity")),
		Decrease: key.NewBinding(key.WithKeys("-", "_")),
		Publish:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Select, k.Waive, k.Increase, k.Publish, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// CalculatorModel is the interactive quote screen. Every change produces a
// new selection and the quote is recomputed from scratch.
type CalculatorModel struct {
	catalog   *catalog.Catalog
	format    *money.Formatter
	selection quote.Selection
	quote     *quote.Quote
	err       error

	focus   section
	cursors [sectionCount]int

	publish PublishFunc
	status  string

	keys     keyMap
	help     help.Model
	quitting bool
}

// CalculatorOption configures a CalculatorModel.
type CalculatorOption func(*CalculatorModel)

// WithPublisher enables the publish key.
func WithPublisher(fn PublishFunc) CalculatorOption {
	return func(m *CalculatorModel) {
		m.publish = fn
	}
}

// WithSelection starts the calculator from an existing selection.
func WithSelection(sel quote.Selection) CalculatorOption {
	return func(m *CalculatorModel) {
		m.selection = sel.Clone()
	}
}

// NewCalculatorModel creates the calculator for a catalog.
func NewCalculatorModel(cat *catalog.Catalog, opts ...CalculatorOption) CalculatorModel {
	m := CalculatorModel{
		catalog:   cat,
		format:    cat.Formatter(),
		selection: quote.NewSelection(cat),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.recompute()
	return m
}

// Selection returns the current selection.
func (m CalculatorModel) Selection() quote.Selection { return m.selection }

// Quote returns the current quote, nil if the last computation failed.
func (m CalculatorModel) Quote() *quote.Quote { return m.quote }

// Err returns the last computation error.
func (m CalculatorModel) Err() error { return m.err }

func (m *CalculatorModel) recompute() {
	m.quote, m.err = quote.Compute(m.catalog, m.selection)
}

func (m CalculatorModel) itemCount(s section) int {
	switch s {
	case sectionPlans:
		return len(m.catalog.Plans())
	case sectionServices:
		return len(m.catalog.Services())
	case sectionWebsite:
		return len(m.catalog.Websites())
	case sectionCrm:
		return len(m.catalog.CrmOptions())
	case sectionExtras:
		return len(m.catalog.Products())
	}
	return 0
}

// Init implements tea.Model.
func (m CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case publishedMsg:
		if msg.err != nil {
			m.status = RenderError("publish failed: " + msg.err.Error())
		} else {
			m.status = RenderSuccess("quote published")
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m CalculatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cursor := &m.cursors[m.focus]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if *cursor > 0 {
			*cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if *cursor < m.itemCount(m.focus)-1 {
			*cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % sectionCount
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + sectionCount - 1) % sectionCount
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.selection = m.activate(m.selection)

	case key.Matches(msg, m.keys.Waive):
		m.selection = m.selection.SetWebsiteWaived(!m.selection.WebsiteWaived)

	case key.Matches(msg, m.keys.Increase):
		if id, ok := m.focusedProduct(); ok {
			m.selection = m.selection.AdjustQuantity(id, 1)
		}

	case key.Matches(msg, m.keys.Decrease):
		if id, ok := m.focusedProduct(); ok {
			m.selection = m.selection.AdjustQuantity(id, -1)
		}

	case key.Matches(msg, m.keys.Reset):
		m.selection = quote.NewSelection(m.catalog)
		m.status = ""

	case key.Matches(msg, m.keys.Publish):
		if m.publish == nil {
			m.status = RenderMuted("publishing is not configured")
			return m, nil
		}
		if m.quote == nil {
			return m, nil
		}
		m.status = RenderMuted("publishing...")
		return m, publishCmd(m.publish, m.selection.Clone(), m.quote)

	default:
		return m, nil
	}

	m.recompute()
	return m, nil
}

// activate applies the select action to the item under the cursor.
func (m CalculatorModel) activate(sel quote.Selection) quote.Selection {
	i := m.cursors[m.focus]
	if i >= m.itemCount(m.focus) {
		return sel
	}

	switch m.focus {
	case sectionPlans:
		return sel.SelectPlan(m.catalog.Plans()[i].ID)
	case sectionServices:
		return sel.ToggleService(m.catalog.Services()[i].ID)
	case sectionWebsite:
		return sel.ToggleWebsite(m.catalog.Websites()[i].ID)
	case sectionCrm:
		return sel.ToggleCrmOption(m.catalog.CrmOptions()[i].ID)
	case sectionExtras:
		return sel.AdjustQuantity(m.catalog.Products()[i].ID, 1)
	}
	return sel
}

func (m CalculatorModel) focusedProduct() (string, bool) {
	if m.focus != sectionExtras {
		return "", false
	}
	products := m.catalog.Products()
	i := m.cursors[sectionExtras]
	if i >= len(products) {
		return "", false
	}
	return products[i].ID, true
}

func publishCmd(fn PublishFunc, sel quote.Selection, q *quote.Quote) tea.Cmd {
	return func() tea.Msg {
		return publishedMsg{err: fn(sel, q)}
	}
}

// View implements tea.Model.
func (m CalculatorModel) View() string {
	if m.quitting {
		return ""
	}

	header := RenderTitle(m.catalog.Name())
	if v := m.catalog.Version(); v != "" {
		header += "  " + RenderMuted(v)
	}

	var left strings.Builder
	for s := sectionPlans; s < sectionCount; s++ {
		left.WriteString(m.renderSection(s))
		left.WriteString("\n")
	}

	var right string
	if m.err != nil {
		right = RenderErrorBox("Unable to compute quote\n\n" + m.err.Error())
	} else {
		plan := fmt.Sprintf("%s  %d vehicles", m.quote.Plan.Name, m.quote.Plan.Vehicles)
		right = SummaryBoxStyle.Render(HeaderStyle.Render("Summary") + "  " + RenderMuted(plan) + "\n\n" + RenderSummary(m.quote, m.format))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, BoxStyle.Render(strings.TrimRight(left.String(), "\n")), "  ", right)

	out := header + "\n\n" + body + "\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	out += m.help.View(m.keys) + "\n"
	return out
}

func (m CalculatorModel) renderSection(s section) string {
	var b strings.Builder
	if s == m.focus {
		b.WriteString(ActiveHeaderStyle.Render(sectionTitles[s]))
	} else {
		b.WriteString(HeaderStyle.Render(sectionTitles[s]))
	}
	b.WriteString("\n")

	f := m.format
	sel := m.selection
	row := func(i int, marker string, selected bool, text string) {
		cursor := " "
		if s == m.focus && m.cursors[s] == i {
			cursor = ListCursor
		}
		line := fmt.Sprintf("%s %s %s", cursor, marker, text)
		if selected {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	switch s {
	case sectionPlans:
		for i, p := range m.catalog.Plans() {
			on := sel.PlanID == p.ID
			row(i, radio(on), on, fmt.Sprintf("%s (%d vehicles)  %s  annual %s",
				p.Name, p.Vehicles, f.Format(p.MonthlyPrice), f.Format(p.AnnualPrice)))
		}
	case sectionServices:
		for i, svc := range m.catalog.Services() {
			on := sel.HasService(svc.ID)
			text := fmt.Sprintf("%s  %s", svc.Name, f.Format(svc.MonthlyPrice))
			if svc.HasAnnualDiscount() {
				text += fmt.Sprintf("  annual %s", f.Format(svc.AnnualRate()))
			}
			row(i, checkbox(on), on, text)
		}
	case sectionWebsite:
		for i, w := range m.catalog.Websites() {
			on := sel.WebsiteID == w.ID
			row(i, radio(on), on, fmt.Sprintf("%s  %s", w.Name, f.Format(w.Price)))
		}
		if sel.WebsiteID != "" {
			b.WriteString(WarningStyle.Render(fmt.Sprintf("    %s waive setup fee (w)", checkbox(sel.WebsiteWaived))) + "\n")
		}
	case sectionCrm:
		for i, o := range m.catalog.CrmOptions() {
			on := sel.CrmID == o.ID
			text := fmt.Sprintf("%s  %s", o.Name, f.Format(o.MonthlyPrice))
			if !o.SetupFee.IsZero() {
				text += fmt.Sprintf("  + setup %s", f.Format(o.SetupFee))
			}
			row(i, radio(on), on, text)
		}
	case sectionExtras:
		for i, p := range m.catalog.Products() {
			n := sel.Quantity(p.ID)
			unit := p.UnitLabel
			if unit == "" {
				unit = "un"
			}
			row(i, fmt.Sprintf("[%2d]", n), n > 0, fmt.Sprintf("%s  %s/%s", p.Name, f.Format(p.UnitPrice), unit))
		}
	}

	return b.String()
}

func radio(on bool) string {
	if on {
		return RadioOn
	}
	return RadioOff
}

func checkbox(on bool) string {
	if on {
		return CheckboxOn
	}
	return CheckboxOff
}

// RunCalculator runs the calculator full screen and returns the final selection.
func RunCalculator(cat *catalog.Catalog, opts ...CalculatorOption) (quote.Selection, error) {
	p := tea.NewProgram(NewCalculatorModel(cat, opts...), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return quote.Selection{}, fmt.Errorf("failed to run calculator: %w", err)
	}

	m, ok := final.(CalculatorModel)
	if !ok {
		return quote.Selection{}, fmt.Errorf("unexpected model type")
	}
	return m.Selection(), nil
}
