package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/input"
	"myday/internal/logger"
)

// dayChangedMsg is posted by the midnight job so My Day picks up tasks
// that became due.
type dayChangedMsg struct{}

type Model struct {
	app     *app.App
	handler *input.Handler
	keys    config.Keymap
	status  string
	width   int
}

func NewModel(a *app.App, keys config.Keymap) Model {
	return Model{
		app:     a,
		handler: input.New(keys),
		keys:    keys,
		width:   70,
	}
}

// Run blocks until the user quits. Day rollover is delivered through the
// program's message queue, so the App is only touched by the event loop.
func Run(a *app.App, cfg config.Config) error {
	program := tea.NewProgram(NewModel(a, cfg.Keys), tea.WithAltScreen())

	c := cron.New()
	if _, err := c.AddFunc("@midnight", func() { program.Send(dayChangedMsg{}) }); err != nil {
		return fmt.Errorf("schedule midnight refresh: %w", err)
	}
	c.Start()
	defer c.Stop()

	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if err := m.handler.Handle(m.app, msg); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = ""
		}
		if m.app.ShouldQuit() {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case dayChangedMsg:
		added := m.app.RefreshMyDay()
		logger.Info("day changed", zap.Int("added_to_my_day", added))
		if added > 0 {
			m.status = fmt.Sprintf("%d task(s) due today added to My Day", added)
		}
	}
	return m, nil
}
