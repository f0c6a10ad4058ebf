package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/folio/internal/clock"
	"github.com/san-kum/folio/internal/config"
	"github.com/san-kum/folio/internal/content"
	"github.com/san-kum/folio/internal/interact"
	"github.com/san-kum/folio/internal/record"
	"github.com/san-kum/folio/internal/viz"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	auraDuration = 0.25
	statusTTL    = 3 * time.Second
	// maxFrameGap caps how much simulated time one frame may advance, so a
	// suspended terminal does not replay seconds of ticks at once.
	maxFrameGap = 250 * time.Millisecond
)

type frameMsg time.Time

type Options struct {
	Config  *config.Config
	Profile *content.Profile
	Preset  string
	Store   *record.Store
}

// Model hosts the interaction controller inside a bubbletea program. All
// controller callbacks run from Update via the manual clock.
type Model struct {
	cfg      *config.Config
	params   interact.Params
	preset   string
	ctrl     *interact.Controller
	clk      *clock.Manual
	profile  *content.Profile
	theme    viz.Theme
	backdrop *viz.Backdrop
	layout   viz.Layout

	aura    *gween.Tween
	auraVal float32

	lastFrame time.Time
	lastPtr   interact.Vec2
	havePtr   bool

	showHelp  bool
	recording bool
	rec       *record.Recorder
	store     *record.Store

	status      string
	statusUntil time.Time

	now      func() time.Time
	copyText func(string) error
}

func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	params, err := cfg.Params()
	if err != nil {
		return Model{}, err
	}
	profile := opts.Profile
	if profile == nil {
		profile = content.Default()
	}
	clk := clock.NewManual()
	return Model{
		cfg:      cfg,
		params:   params,
		preset:   opts.Preset,
		ctrl:     interact.New(clk, params),
		clk:      clk,
		profile:  profile,
		theme:    viz.GetTheme(cfg.Theme),
		backdrop: viz.NewBackdrop(cfg.Backdrop.Particles, cfg.Backdrop.Seed),
		layout:   viz.NewLayout(120, 40, cfg.Cell.Width, cfg.Cell.Height),
		rec:      &record.Recorder{},
		store:    opts.Store,
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}, nil
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.frame() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = viz.NewLayout(msg.Width, msg.Height, m.cfg.Cell.Width, m.cfg.Cell.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case frameMsg:
		m.advance(time.Time(msg))
		return m, m.frame()
	}
	return m, nil
}

func (m *Model) advance(now time.Time) {
	if !m.lastFrame.IsZero() {
		dt := now.Sub(m.lastFrame)
		if dt > maxFrameGap {
			dt = maxFrameGap
		}
		if dt > 0 {
			m.clk.Advance(dt)
			m.backdrop.Step(dt.Seconds())
			if m.aura != nil {
				var done bool
				m.auraVal, done = m.aura.Update(float32(dt.Seconds()))
				if done {
					m.aura = nil
				}
			}
		}
	}
	m.lastFrame = now
	if m.status != "" && now.After(m.statusUntil) {
		m.status = ""
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := m.layout.ToPointer(msg.X, msg.Y)
	var dx, dy float64
	if m.havePtr {
		dx, dy = x-m.lastPtr.X, y-m.lastPtr.Y
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.capture(record.KindDown, x, y, 0, 0)
		if m.ctrl.Press(x, y) {
			m.fadeAura(1)
		}
	case msg.Action == tea.MouseActionRelease:
		m.capture(record.KindUp, x, y, 0, 0)
		wasDragging := m.ctrl.Dragging()
		m.ctrl.PointerUp()
		if wasDragging {
			m.fadeAura(0)
		}
	case msg.Action == tea.MouseActionMotion:
		m.capture(record.KindMove, x, y, dx, dy)
		m.ctrl.PointerMove(x, y, dx, dy)
	default:
		return
	}
	m.lastPtr, m.havePtr = interact.Vec2{X: x, Y: y}, true
}

func (m *Model) fadeAura(to float32) {
	m.aura = gween.New(m.auraVal, to, auraDuration, ease.OutCubic)
}

func (m *Model) capture(kind record.Kind, x, y, dx, dy float64) {
	if m.recording {
		m.rec.Add(m.now(), kind, x, y, dx, dy)
	}
}

func (m *Model) flash(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusTTL)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.flash("theme " + m.theme.Name)
	case "r":
		m.ctrl.Reset()
		m.fadeAura(0)
	case "?":
		m.showHelp = !m.showHelp
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.startRecording()
		}
	case "c":
		addr := m.profile.Primary()
		if addr == "" {
			break
		}
		if err := m.copyText(addr); err != nil {
			slog.Warn("clipboard copy failed", "error", err)
			m.flash("clipboard unavailable")
			break
		}
		m.flash("copied " + addr)
	}
	return m, nil
}

func (m *Model) startRecording() {
	if m.store == nil {
		m.flash("no data dir")
		return
	}
	m.rec.Start(m.now())
	m.recording = true
}

func (m *Model) stopRecording() {
	m.recording = false
	if m.rec.Len() == 0 {
		m.flash("nothing recorded")
		return
	}
	if err := m.store.Init(); err != nil {
		slog.Error("recording not saved", "error", err)
		m.flash("save failed")
		return
	}
	id, err := m.store.Save(m.preset, m.params.Decay.String(), m.rec.Events())
	if err != nil {
		slog.Error("recording not saved", "error", err)
		m.flash("save failed")
		return
	}
	slog.Info("session recorded", "id", id, "events", m.rec.Len())
	m.flash(fmt.Sprintf("saved %s", id))
}

func (m Model) View() string {
	status := m.status
	if m.recording {
		status = fmt.Sprintf("● REC %d", m.rec.Len())
	}
	return viz.Render(viz.Input{
		Snapshot: m.ctrl.Snapshot(),
		CardSize: m.params.CardSize,
		Profile:  m.profile,
		Theme:    m.theme,
		Backdrop: m.backdrop,
		Layout:   m.layout,
		Aura:     float64(m.auraVal),
		Status:   status,
		ShowHelp: m.showHelp,
	})
}

// Run starts the full-screen program with mouse motion reporting.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
