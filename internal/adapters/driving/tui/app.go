package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/views/launcher"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/services"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Options tune the palette's behaviour.
type Options struct {
	// Debounce delays each query before it is resolved.
	Debounce time.Duration

	// HideOnBlur hides the palette when the terminal loses focus.
	HideOnBlur bool
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Update is the only goroutine that touches the session. Resolver calls
// run inside tea.Cmds and come back as QueryResolved messages.
type App struct {
	ports  *Ports
	opts   Options
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	log    zerolog.Logger

	launcherView *launcher.View
	settingsView *settings.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		opts:         opts,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		log:          logger.Component("tui"),
		launcherView: launcher.NewView(s, km),
		settingsView: settings.NewView(s, ports.Settings),
	}

	ports.Session.OnSelectionChange(func(i int) {
		a.log.Debug().Int("cursor", i).Msg("selection changed")
	})

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It issues the initial query and loads index statistics.
func (a *App) Init() tea.Cmd {
	a.ports.Session.Start()
	return tea.Batch(
		tea.SetWindowTitle("swordfish"),
		a.launcherView.Init(),
		a.loadIndexStats(),
		a.settle(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.launcherView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}
		cmd = a.handleKey(msg)

	case tea.MouseMsg:
		cmd = a.handleMouse(msg)

	case tea.BlurMsg:
		if a.opts.HideOnBlur && !a.ports.Window.MainHidden() {
			a.hideMain()
		}

	case messages.QueryDue:
		if a.ports.Session.Channel().IsCurrent(msg.Ticket) {
			cmd = a.resolve(msg.Ticket)
		}

	case messages.QueryResolved:
		if a.ports.Session.ApplyResponse(msg.Response) && msg.Response.Err != nil {
			a.launcherView.SetError(msg.Response.Err)
		}

	case messages.OpenWindow:
		cmd = a.openWindow(msg.Window)

	case messages.CloseWindow:
		a.closeWindow(msg.Window)

	case messages.RunQuery:
		a.showMain()
		if err := a.ports.Session.SetMode(msg.Query.Mode); err != nil {
			a.launcherView.SetError(err)
		}
		a.ports.Session.SetSearchString(msg.Query.SearchString)

	case messages.RunScript:
		a.showMain()
		_ = a.ports.Session.SetMode(domain.ModeScripts)
		a.ports.Session.SetSearchString(msg.Name)

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)

	case messages.IndexStatsLoaded:
		if msg.Err != nil {
			a.log.Warn().Err(msg.Err).Msg("failed to load index stats")
		} else {
			a.launcherView.SetIndexed(msg.Stats.Paths)
		}

	case messages.ErrorOccurred:
		a.launcherView.SetError(msg.Err)

	case messages.Quit:
		return a, tea.Quit

	default:
		// Cursor blink and other input housekeeping.
		cmd = a.launcherView.UpdateInput(msg)
	}

	return a, tea.Batch(cmd, a.settle())
}

// handleKey routes a key press to the screen that is showing.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	w := a.ports.Window

	if w.SettingsVisible() {
		if key.Matches(msg, a.keymap.Settings) {
			return a.report(a.ports.Session.OpenSettings(a.ctx))
		}
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return cmd
	}

	if w.MainHidden() {
		if key.Matches(msg, a.keymap.Show) {
			return a.openWindow(messages.WindowMain)
		}
		return nil
	}

	a.launcherView.SetError(nil)

	var out services.Outcome
	if ev, ok := a.keymap.KeyEvent(msg); ok {
		out = a.ports.Dispatcher.Dispatch(a.ctx, ev)
	}

	var cmds []tea.Cmd
	if out.Err != nil {
		cmds = append(cmds, a.report(out.Err))
	}
	if out.Action == services.ActionOpenSettings && w.SettingsVisible() {
		a.settingsView.Reset()
		cmds = append(cmds, a.settingsView.Init())
	}

	if !out.Handled {
		before := a.launcherView.InputValue()
		cmds = append(cmds, a.launcherView.UpdateInput(msg))
		if after := a.launcherView.InputValue(); after != before {
			a.ports.Session.SetSearchString(after)
		}
	}
	if out.FocusInput {
		cmds = append(cmds, a.launcherView.FocusInput())
	}

	return tea.Batch(cmds...)
}

// handleMouse moves the cursor under the pointer and opens on click.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	w := a.ports.Window
	if w.SettingsVisible() || w.MainHidden() {
		return nil
	}

	s := a.ports.Session
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		s.SetCursor(s.Snapshot().Cursor - 1)
		return nil
	case tea.MouseButtonWheelDown:
		s.SetCursor(s.Snapshot().Cursor + 1)
		return nil
	}

	i, ok := a.launcherView.ResultAt(msg.Y)
	if !ok {
		return nil
	}
	s.SetCursor(i)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		entry, _ := s.SelectedResult(0)
		return a.report(s.OpenResult(a.ctx, entry))
	}
	return nil
}

// report shows err in the status bar. An empty selection is not worth
// reporting.
func (a *App) report(err error) tea.Cmd {
	if err == nil || errors.Is(err, domain.ErrNoSelection) {
		return nil
	}
	a.launcherView.SetError(err)
	return nil
}

func (a *App) openWindow(w messages.WindowIdent) tea.Cmd {
	switch w {
	case messages.WindowSettings:
		if err := a.ports.Window.ShowSettings(a.ctx); err != nil {
			a.log.Warn().Err(err).Msg("failed to show settings")
		}
		a.settingsView.Reset()
		return a.settingsView.Init()
	default:
		a.showMain()
		return nil
	}
}

func (a *App) closeWindow(w messages.WindowIdent) {
	switch w {
	case messages.WindowSettings:
		if err := a.ports.Window.HideSettings(a.ctx); err != nil {
			a.log.Warn().Err(err).Msg("failed to hide settings")
		}
	default:
		a.hideMain()
	}
}

// showMain reveals the palette. A palette that was hidden starts over
// with a fresh query.
func (a *App) showMain() {
	wasHidden := a.ports.Window.MainHidden()
	if err := a.ports.Window.ShowMain(a.ctx); err != nil {
		a.log.Warn().Err(err).Msg("failed to show palette")
	}
	if wasHidden {
		a.ports.Session.Start()
	}
}

// hideMain hides the palette on behalf of something other than the
// session, which then only has to reset.
func (a *App) hideMain() {
	if err := a.ports.Window.HideMain(a.ctx); err != nil {
		a.log.Warn().Err(err).Msg("failed to hide palette")
	}
	a.ports.Session.HandleWindowHidden(a.ctx)
}

// settle runs after every message: it quits if hiding asked for it,
// schedules the newest queued query and re-renders the session.
func (a *App) settle() tea.Cmd {
	if a.ports.Window.ShouldQuit() {
		return tea.Quit
	}

	var cmd tea.Cmd
	if tickets := a.ports.Session.Channel().Drain(); len(tickets) > 0 {
		cmd = a.debounce(tickets[len(tickets)-1])
	}

	a.launcherView.Sync(a.ports.Session.Snapshot())
	return cmd
}

func (a *App) debounce(t services.Ticket) tea.Cmd {
	if a.opts.Debounce <= 0 {
		return func() tea.Msg { return messages.QueryDue{Ticket: t} }
	}
	return tea.Tick(a.opts.Debounce, func(time.Time) tea.Msg {
		return messages.QueryDue{Ticket: t}
	})
}

func (a *App) resolve(t services.Ticket) tea.Cmd {
	ctx := a.ctx
	channel := a.ports.Session.Channel()
	return func() tea.Msg {
		return messages.QueryResolved{Response: channel.Resolve(ctx, t)}
	}
}

func (a *App) loadIndexStats() tea.Cmd {
	index := a.ports.Index
	if index == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		stats, err := index.Stats(ctx)
		return messages.IndexStatsLoaded{Stats: stats, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch {
	case a.ports.Window.SettingsVisible():
		return a.settingsView.View()
	case a.ports.Window.MainHidden():
		return a.viewHidden()
	default:
		return a.launcherView.View()
	}
}

func (a *App) viewHidden() string {
	text := a.styles.Title.Render("swordfish") + "\n\n" +
		a.styles.Muted.Render("hidden · enter to show · ctrl+c to quit")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, text)
}

// Program creates the Bubbletea program for the app. External event
// sources deliver messages through its Send method.
func (a *App) Program() *tea.Program {
	return tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(a.ctx),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
