// Package tui is the interactive viewer: a date input, the saved-search
// list, and the picture pane, wired together over a bubbletea event loop.
package tui

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mech-Kal/nasasky/internal/history"
	"github.com/Mech-Kal/nasasky/internal/nasa"
)

type focusPane int

const (
	focusInput focusPane = iota
	focusHistory
)

// App drives one query at a time: submitting a date (or picking one from
// the history) issues a fetch, a successful fetch is recorded and the
// history re-rendered, a failed one renders an error for that date.
// Overlapping fetches are not cancelled; whichever outcome arrives last
// owns the display.
type App struct {
	client  *nasa.Client
	cache   *history.Cache
	timeout time.Duration

	input   textinput.Model
	spinner spinner.Model

	dates  []string // most recent first, for display
	cursor int
	focus  focusPane

	pic         *nasa.Picture
	loading     bool
	loadingDate string
	err         error
	errDate     string
	warn        string

	width  int
	height int
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Client  *nasa.Client
	Cache   *history.Cache
	Timeout time.Duration
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.Prompt = inputPromptStyle.Render("date> ")
	ti.CharLimit = 10
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &App{
		client:  opts.Client,
		cache:   opts.Cache,
		timeout: timeout,
		input:   ti,
		spinner: sp,
	}
}

// Init starts the passive load of today's picture (not recorded in the
// history) and the load of the persisted history, in parallel.
func (a *App) Init() tea.Cmd {
	today := nasa.Today()
	a.loading = true
	a.loadingDate = today

	return tea.Batch(
		a.fetchCmd(today, false),
		a.loadHistoryCmd(),
		a.spinner.Tick,
		textinput.Blink,
	)
}

// fetchCmd captures the query into the closure; the fetch runs off the
// event loop and reports back as a message.
func (a *App) fetchCmd(date string, record bool) tea.Cmd {
	client := a.client
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		pic, err := client.Picture(ctx, date)
		if err != nil {
			return fetchErrMsg{date: date, err: err}
		}
		return pictureMsg{date: date, pic: pic, record: record}
	}
}

func (a *App) loadHistoryCmd() tea.Cmd {
	cache := a.cache
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// A store that cannot be read means no history, never a dead app.
		if _, err := cache.Load(ctx); err != nil {
			return historyMsg{}
		}
		return historyMsg{dates: slices.Collect(cache.MostRecentFirst())}
	}
}

// recordCmd promotes date to most recent and reports the updated list.
func (a *App) recordCmd(date string) tea.Cmd {
	cache := a.cache
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := cache.Record(ctx, date); err != nil {
			return historyMsg{dates: slices.Collect(cache.MostRecentFirst()), saveErr: err}
		}
		return historyMsg{dates: slices.Collect(cache.MostRecentFirst())}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case pictureMsg:
		// Last write wins: the display is overwritten unconditionally by
		// whichever fetch completes last.
		a.loading = false
		a.pic = msg.pic
		a.err = nil
		a.errDate = ""
		if msg.record {
			return a, a.recordCmd(msg.date)
		}
		return a, nil

	case fetchErrMsg:
		a.loading = false
		a.pic = nil
		a.err = msg.err
		a.errDate = msg.date
		return a, nil

	case historyMsg:
		a.dates = msg.dates
		if a.cursor >= len(a.dates) {
			a.cursor = max(0, len(a.dates)-1)
		}
		a.warn = ""
		if msg.saveErr != nil {
			a.warn = "history not saved: " + msg.saveErr.Error()
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		if a.focus == focusInput {
			a.focus = focusHistory
			a.input.Blur()
		} else {
			a.focus = focusInput
			a.input.Focus()
		}
		return a, nil
	case "enter":
		return a.submit()
	}

	if a.focus == focusHistory {
		switch msg.String() {
		case "q", "esc":
			return a, tea.Quit
		case "j", "down":
			if a.cursor < len(a.dates)-1 {
				a.cursor++
			}
			return a, nil
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit starts a query for the focused input value or the selected
// history entry. An empty input is a no-op.
func (a *App) submit() (tea.Model, tea.Cmd) {
	var date string
	switch a.focus {
	case focusInput:
		date = strings.TrimSpace(a.input.Value())
	case focusHistory:
		if a.cursor < len(a.dates) {
			date = a.dates[a.cursor]
		}
	}
	if date == "" {
		return a, nil
	}

	a.loading = true
	a.loadingDate = date
	return a, tea.Batch(a.fetchCmd(date, true), a.spinner.Tick)
}

// Run starts the interactive viewer.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
