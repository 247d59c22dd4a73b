// Package tui is the interactive terminal front end: splash, home, list,
// item form and about screens on top of a shopping.Service.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/category"
	"github.com/idilsaglam/basket/internal/logger"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/shopping"
	"github.com/idilsaglam/basket/internal/validate"
)

type screen int

const (
	screenSplash screen = iota
	screenHome
	screenList
	screenForm
	screenAbout
)

type splashDoneMsg struct{}

// Options wires the program to its collaborators.
type Options struct {
	Service     *shopping.Service
	Registry    *category.Registry
	Default     string // category preselected on new items
	SplashDelay time.Duration
	Log         *logger.Logger
}

// Model is the root Bubble Tea model. Screens share it; only one is
// active at a time and a modal, when open, takes all input.
type Model struct {
	ctx   context.Context
	svc   *shopping.Service
	reg   *category.Registry
	log   *logger.Logger
	def   string
	delay time.Duration

	screen    screen
	aboutFrom screen
	width     int
	height    int

	// home
	home   list.Model
	naming bool
	title  textinput.Model

	// list
	current   model.List
	view      aggregate.ListView
	rows      []model.Item // items in display order; cursor indexes this
	cursor    int
	filter    textinput.Model
	filtering bool

	form  form
	modal *modal
}

// New builds the model. Data is loaded when the splash ends.
func New(ctx context.Context, opt Options) Model {
	log := opt.Log
	if log == nil {
		log = logger.Nop()
	}
	def := opt.Default
	if def == "" {
		def = validate.DefaultCategory
	}

	l := list.New(nil, listDelegate{}, 0, 0)
	l.Title = "Shopping lists"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("list", "lists")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{keys.NewList, keys.Open, keys.DeleteList, keys.About, keys.Quit}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "List name..."
	ti.CharLimit = 200

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter by name or category"
	fi.CharLimit = 100

	return Model{
		ctx:    ctx,
		svc:    opt.Service,
		reg:    opt.Registry,
		log:    log.With("component", "tui"),
		def:    def,
		delay:  opt.SplashDelay,
		screen: screenSplash,
		width:  80,
		height: 24,
		home:   l,
		title:  ti,
		filter: fi,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, opt Options) error {
	p := tea.NewProgram(New(ctx, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	if m.delay <= 0 {
		return func() tea.Msg { return splashDoneMsg{} }
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return splashDoneMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.home.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	switch m.screen {
	case screenSplash:
		switch msg.(type) {
		case splashDoneMsg, tea.KeyMsg:
			return m.showHome(), nil
		}
		return m, nil
	case screenHome:
		return m.updateHome(msg)
	case screenList:
		return m.updateList(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenAbout:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.screen = m.aboutFrom
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var content string
	switch m.screen {
	case screenSplash:
		content = m.viewSplash()
	case screenHome:
		content = m.viewHome()
	case screenList:
		content = m.viewList()
	case screenForm:
		content = m.viewForm()
	case screenAbout:
		content = m.viewAbout()
	}
	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.view())
	}
	return panelString(content)
}

func (m Model) viewSplash() string {
	return lipgloss.Place(m.width-4, m.height-4, lipgloss.Center, lipgloss.Center,
		splashTitleStyle.Render("🛒 Basket")+"\n"+mutedStyle.Render("Your shopping lists, totalled."))
}

func (m Model) viewAbout() string {
	return titleStyle.Render("About Basket") + "\n\n" +
		"Keep shopping lists, group items by category and see\n" +
		"what each category and list costs with tax included.\n\n" +
		mutedStyle.Render("Totals include a fixed 13% tax.") + "\n\n" +
		helpStyle.Render("press any key to go back")
}

// fail opens an error modal. Screens keep their state underneath so the
// user can correct input and retry.
func (m Model) fail(err error) Model {
	msg := err.Error()
	var verr *validate.Error
	var perr *shopping.PersistenceError
	switch {
	case errors.As(err, &verr):
		msg = verr.Message
	case errors.As(err, &perr):
		msg = "Could not " + perr.Op + ". Nothing was changed.\n" + mutedStyle.Render(perr.Err.Error())
	}
	m.log.Warn("action failed", "error", err)
	m.modal = &modal{title: "Error", body: msg, isErr: true}
	return m
}
