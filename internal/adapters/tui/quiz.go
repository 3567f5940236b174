// Package tui runs quizzes in the terminal with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginLeft(2)
	badgeStyle        = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	questionStyle     = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	answerStyle       = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("42"))
	errorStyle        = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("196"))
)

type phase int

const (
	phasePick phase = iota
	phaseQuiz
	phaseDone
)

type topicItem struct {
	name  string
	cards int
}

func (i topicItem) FilterValue() string { return i.name }

type topicDelegate struct{}

func (d topicDelegate) Height() int                             { return 1 }
func (d topicDelegate) Spacing() int                            { return 0 }
func (d topicDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d topicDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(topicItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s (%d cards)", index+1, i.name, i.cards)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

// Config configures a quiz model.
type Config struct {
	Quiz    *app.QuizService
	Subject domain.Subject

	// Topic starts the quiz at once. Empty shows the topic picker.
	Topic string
}

// QuizModel is the bubbletea model of one quiz run. It expects the session
// navigator to be on the dashboard.
type QuizModel struct {
	ctx     context.Context
	quiz    *app.QuizService
	subject string

	phase    phase
	topics   list.Model
	input    textinput.Model
	session  domain.QuizSession
	reviewed int
	finished bool
	err      error
}

// NewQuizModel creates a quiz model over subject.
func NewQuizModel(ctx context.Context, cfg Config) (QuizModel, error) {
	if len(cfg.Subject.Topics) == 0 {
		return QuizModel{}, domain.NewValidationError("subject", "subject has no topics")
	}

	items := make([]list.Item, len(cfg.Subject.Topics))
	for i, t := range cfg.Subject.Topics {
		items[i] = topicItem{name: t.Name, cards: len(t.Cards)}
	}

	const defaultWidth, defaultHeight = 40, 14

	l := list.New(items, topicDelegate{}, defaultWidth, defaultHeight)
	l.Title = cfg.Subject.Name + ": pick a topic"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	input := textinput.New()
	input.Placeholder = "type your answer, enter to reveal"
	input.Prompt = "  > "
	input.CharLimit = 512

	m := QuizModel{
		ctx:     ctx,
		quiz:    cfg.Quiz,
		subject: cfg.Subject.Name,
		phase:   phasePick,
		topics:  l,
		input:   input,
	}

	if cfg.Topic != "" {
		if err := m.start(cfg.Topic); err != nil {
			return QuizModel{}, err
		}
	}

	return m, nil
}

// Reviewed is the number of cards whose answer was shown.
func (m QuizModel) Reviewed() int { return m.reviewed }

// Finished reports whether every card of the quiz was seen.
func (m QuizModel) Finished() bool { return m.finished }

// Err is the last service error, if any.
func (m QuizModel) Err() error { return m.err }

func (m *QuizModel) start(topic string) error {
	session, err := m.quiz.Start(m.ctx, m.subject, topic, domain.ScreenDashboard)
	if err != nil {
		return err
	}

	m.session = session
	m.phase = phaseQuiz
	m.input.Reset()
	m.input.Focus()

	return nil
}

func (m QuizModel) Init() tea.Cmd {
	if m.phase == phaseQuiz {
		return textinput.Blink
	}

	return nil
}

func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.topics.SetWidth(msg.Width)
		m.input.Width = max(msg.Width-8, 10)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}

		switch m.phase {
		case phasePick:
			return m.updatePick(msg)
		case phaseQuiz:
			return m.updateQuiz(msg)
		case phaseDone:
			return m, tea.Quit
		}
	}

	if m.phase == phasePick {
		var cmd tea.Cmd
		m.topics, cmd = m.topics.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m QuizModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "enter":
		item, ok := m.topics.SelectedItem().(topicItem)
		if !ok {
			return m, nil
		}

		if err := m.start(item.name); err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil

		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.topics, cmd = m.topics.Update(msg)

	return m, cmd
}

// updateQuiz handles keys while a card is shown. q only exits while the
// answer box is empty so it can still be typed.
func (m QuizModel) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.String() == "q" && m.input.Value() == "":
		return m.quit()

	case msg.Type == tea.KeyEnter:
		if !m.session.Revealed {
			return m.reveal()
		}

		return m.next()
	}

	if m.session.Revealed {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m QuizModel) reveal() (tea.Model, tea.Cmd) {
	if _, err := m.quiz.Respond(m.ctx, m.input.Value()); err != nil {
		m.err = err
		return m, nil
	}

	session, err := m.quiz.Reveal(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.session = session
	m.reviewed++
	m.input.Blur()

	return m, nil
}

func (m QuizModel) next() (tea.Model, tea.Cmd) {
	step, err := m.quiz.Next(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.session = step.Session

	if step.Finished {
		m.finished = true
		m.phase = phaseDone

		return m, nil
	}

	m.input.Reset()

	return m, m.input.Focus()
}

// quit leaves a running quiz before stopping the program.
func (m QuizModel) quit() (tea.Model, tea.Cmd) {
	if m.phase == phaseQuiz {
		if _, err := m.quiz.Exit(m.ctx); err != nil {
			m.err = err
		}
	}

	m.phase = phaseDone

	return m, tea.Quit
}

func (m QuizModel) View() string {
	var b strings.Builder

	switch m.phase {
	case phasePick:
		b.WriteString("\n" + m.topics.View() + "\n")
		b.WriteString(helpStyle.Render("enter: start  q: quit") + "\n")

	case phaseQuiz:
		pos, total := m.session.Position()
		card := m.session.Current()

		fmt.Fprintf(&b, "\n%s  %s\n\n",
			titleStyle.Render(fmt.Sprintf("%s  card %d of %d", m.session.Stack, pos, total)),
			badgeStyle.Render(card.Type.Label()))
		b.WriteString(questionStyle.Render(card.Question) + "\n\n")

		if m.session.Revealed {
			if m.session.Response != "" {
				b.WriteString(helpStyle.Render("you said: "+m.session.Response) + "\n")
			}

			b.WriteString(answerStyle.Render(card.Answer) + "\n\n")

			hint := "enter: next card  q: quit"
			if m.session.IsLast() {
				hint = "enter: finish  q: quit"
			}

			b.WriteString(helpStyle.Render(hint) + "\n")
		} else {
			b.WriteString(m.input.View() + "\n\n")
			b.WriteString(helpStyle.Render("enter: reveal  esc: quit") + "\n")
		}

	case phaseDone:
		if m.finished {
			fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(
				fmt.Sprintf("Quiz complete: %d of %d answers reviewed.", m.reviewed, len(m.session.Cards))))
		} else {
			fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Goodbye!"))
		}
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	return b.String()
}

// Run shows m until the user quits. The program stops when ctx is cancelled.
func Run(ctx context.Context, m QuizModel, opts ...tea.ProgramOption) (QuizModel, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m, fmt.Errorf("running quiz: %w", err)
	}

	out, ok := final.(QuizModel)
	if !ok {
		return m, nil
	}

	return out, nil
}
