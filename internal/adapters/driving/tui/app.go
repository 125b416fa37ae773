package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// chromeHeight is the title, input box and status bar.
const chromeHeight = 6

type entry struct {
	role domain.Role
	text string
}

// App is the chat model following the Elm architecture.
type App struct {
	ports   *Ports
	ctx     context.Context
	session string

	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.QuestionInput
	status *status.Bar
	view   viewport.Model

	entries []entry
	busy    bool

	width int
	ready bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a chat bound to session.
func NewApp(ports *Ports, session string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if strings.TrimSpace(session) == "" {
		return nil, ErrMissingSession
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetSession(session)

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		session: session,
		styles:  s,
		keymap:  km,
		input:   input.NewQuestionInput(s),
		status:  bar,
		view:    viewport.New(80, 20),
		width:   80,
	}, nil
}

// WithContext sets the context passed to the services.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.input.Init(),
		tea.SetWindowTitle("voxrag - " + a.session),
	}
	if a.ports.Conversations != nil {
		cmds = append(cmds, a.loadHistory())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.ready = true
		a.view.Width = msg.Width
		a.view.Height = max(msg.Height-chromeHeight, 3)
		a.input.SetWidth(msg.Width)
		a.status.SetWidth(msg.Width)
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Submit):
			return a, a.submit()
		case key.Matches(msg, a.keymap.ScrollUp), key.Matches(msg, a.keymap.ScrollDown):
			var cmd tea.Cmd
			a.view, cmd = a.view.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case messages.AskCompleted:
		a.busy = false
		if msg.Err != nil {
			a.status.SetError(msg.Err.Error())
			return a, nil
		}
		a.entries = append(a.entries, entry{role: domain.RoleAgent, text: msg.Answer})
		a.status.SetState(status.StateReady)
		a.status.SetTurns(len(a.entries))
		a.refresh()
		return a, nil

	case messages.HistoryLoaded:
		if msg.Err != nil {
			a.status.SetError(msg.Err.Error())
			return a, nil
		}
		loaded := make([]entry, 0, len(msg.Turns)+len(a.entries))
		for _, t := range msg.Turns {
			loaded = append(loaded, entry{role: t.Role, text: t.Text})
		}
		a.entries = append(loaded, a.entries...)
		a.status.SetTurns(len(a.entries))
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed question unless one is already in flight.
func (a *App) submit() tea.Cmd {
	question := strings.TrimSpace(a.input.Value())
	if a.busy || question == "" {
		return nil
	}

	a.busy = true
	a.input.Reset()
	a.entries = append(a.entries, entry{role: domain.RoleUser, text: question})
	a.status.SetState(status.StateThinking)
	a.refresh()

	ctx, answers, session := a.ctx, a.ports.Answers, a.session
	return func() tea.Msg {
		answer, err := answers.Ask(ctx, session, question)
		return messages.AskCompleted{Question: question, Answer: answer, Err: err}
	}
}

func (a *App) loadHistory() tea.Cmd {
	ctx, conversations, session := a.ctx, a.ports.Conversations, a.session
	return func() tea.Msg {
		turns, err := conversations.History(ctx, session)
		return messages.HistoryLoaded{Turns: turns, Err: err}
	}
}

// refresh re-renders the transcript and scrolls to the latest turn.
func (a *App) refresh() {
	a.view.SetContent(a.renderTranscript())
	a.view.GotoBottom()
}

func (a *App) renderTranscript() string {
	if len(a.entries) == 0 {
		return a.styles.Muted.Render("No questions yet. Type one below and press enter.")
	}

	wrap := lipgloss.NewStyle().Width(max(a.width-2, 20))
	var b strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := a.styles.User.Render("You")
		if e.role == domain.RoleAgent {
			label = a.styles.Agent.Render("VoxRAG")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(wrap.Render(a.styles.Text.Render(e.text)))
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("VoxRAG chat"),
		a.view.View(),
		a.input.View(),
		a.status.View(),
	)
}

// Run starts the chat program and blocks until it exits.
func Run(ctx context.Context, ports *Ports, session string) error {
	app, err := NewApp(ports, session)
	if err != nil {
		return err
	}
	app.WithContext(ctx)

	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
