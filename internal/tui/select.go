// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storegenius/storegenius/internal/trends"
)

const (
	defaultListWidth  = 60
	defaultListHeight = 14
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a brand.
	ActionSelected
	// ActionStopped indicates the user cancelled the run.
	ActionStopped
)

// SelectionResult holds the result of a brand selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *trends.BrandCount
}

type brandItem struct {
	trends.BrandCount
}

func (i brandItem) Title() string       { return i.Brand }
func (i brandItem) FilterValue() string { return i.Brand }
func (i brandItem) Description() string {
	if i.Count == 1 {
		return "1 mention"
	}
	return fmt.Sprintf("%d mentions", i.Count)
}

type itemStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	brandStyle lipgloss.Style
	countStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	container := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		brandStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		countStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type brandDelegate struct {
	styles itemStyles
}

func newDelegate() brandDelegate {
	return brandDelegate{styles: newItemStyles()}
}

func (d brandDelegate) Height() int                         { return 1 }
func (d brandDelegate) Spacing() int                        { return 0 }
func (d brandDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d brandDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	brand, ok := item.(brandItem)
	if !ok {
		return
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		d.styles.brandStyle.Render(brand.Brand),
		d.styles.countStyle.Render("  "+brand.Description()),
	)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(line))
}

type model struct {
	list   list.Model
	result SelectionResult
}

func newModel(items []brandItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(brandItem); ok {
				result := selected.BrandCount
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &result,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 30)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render("Multiple trending brands found")
	help := helpStyle.Render("Up/Down navigate | Enter select | q cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectBrand presents an interactive picker over ranked trending brands.
// With a single candidate the picker is skipped entirely.
func SelectBrand(ranked []trends.BrandCount) (SelectionResult, error) {
	if len(ranked) == 0 {
		return SelectionResult{Action: ActionStopped}, nil
	}
	if len(ranked) == 1 {
		only := ranked[0]
		return SelectionResult{Action: ActionSelected, Selection: &only}, nil
	}

	items := make([]brandItem, len(ranked))
	for i, brand := range ranked {
		items[i] = brandItem{BrandCount: brand}
	}

	finalModel, err := runProgram(newModel(items))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
