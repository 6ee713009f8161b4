// Package ui provides the Bubble Tea quote-watch TUI.
package ui

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	positiondomain "github.com/fd1az/yieldsplit/business/position/domain"
	pricingdomain "github.com/fd1az/yieldsplit/business/pricing/domain"
	tradedomain "github.com/fd1az/yieldsplit/business/trade/domain"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/debounce"
	"github.com/fd1az/yieldsplit/pkg/ui/components"
	"github.com/shopspring/decimal"
)

// Quoter produces simulated quotes for a market direction.
type Quoter interface {
	Quote(ctx context.Context, m *marketdomain.Market, dir pricingdomain.Direction, amount *big.Int) (*pricingdomain.Quote, error)
}

// BalanceReader aggregates owned positions into logical balances.
type BalanceReader interface {
	Aggregate(ctx context.Context, owner string, m *marketdomain.Market) (*positiondomain.Balances, error)
}

// Side is the token leg the quote trades.
type Side string

const (
	SidePT Side = "PT"
	SideYT Side = "YT"
)

// Mode is the quote direction relative to the side token.
type Mode string

const (
	ModeBuy  Mode = "buy"
	ModeSell Mode = "sell"
)

const quoteTimeout = 10 * time.Second

// Model is the main Bubble Tea model for the quote watcher.
type Model struct {
	// Components
	quotes   *components.QuotesComponent
	balances *components.BalancesComponent
	status   *components.StatusComponent

	// Ports
	quoter      Quoter
	reader      BalanceReader
	checkpoints <-chan ledgerdomain.Checkpoint

	// Selection state
	markets   []*marketdomain.Market
	marketIdx int
	side      Side
	mode      Mode
	slippage  decimal.Decimal
	owner     string

	// Input
	input     textinput.Model
	debouncer *debounce.Debouncer

	// UI state
	keys           KeyMap
	help           help.Model
	showHelp       bool
	ready          bool
	quitting       bool
	width          int
	height         int
	quoting        bool
	lastCheckpoint uint64
	lastError      string
	lastErrorAt    time.Time
}

// New creates a new TUI model.
func New(quoter Quoter, reader BalanceReader, checkpoints <-chan ledgerdomain.Checkpoint, markets []*marketdomain.Market, owner string, slippage decimal.Decimal, debounceDelay time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 24
	input.Width = 20
	input.Focus()

	return Model{
		quotes:      components.NewQuotesComponent(10),
		balances:    components.NewBalancesComponent(),
		status:      components.NewStatusComponent(),
		quoter:      quoter,
		reader:      reader,
		checkpoints: checkpoints,
		markets:     markets,
		side:        SidePT,
		mode:        ModeSell,
		slippage:    slippage,
		owner:       owner,
		input:       input,
		debouncer:   debounce.New(debounceDelay),
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

func (m Model) market() *marketdomain.Market {
	if len(m.markets) == 0 {
		return nil
	}
	return m.markets[m.marketIdx]
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchBalances(), m.listenCheckpoints())
}

// listenCheckpoints waits for the next finalized checkpoint.
func (m Model) listenCheckpoints() tea.Cmd {
	ch := m.checkpoints
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		cp, ok := <-ch
		if !ok {
			return nil
		}
		return CheckpointMsg{Sequence: cp.Sequence}
	}
}

// fetchBalances reloads positions for the selected market.
func (m Model) fetchBalances() tea.Cmd {
	mk := m.market()
	reader := m.reader
	owner := m.owner
	return func() tea.Msg {
		if mk == nil || reader == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
		defer cancel()

		balances, err := reader.Aggregate(ctx, owner, mk)
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return BalancesMsg{
			Market: mk.Symbol,
			PT:     balances.PTHuman(),
			YT:     balances.YTHuman(),
			LP:     balances.LPHuman(),
		}
	}
}

// direction maps the selected side and mode to a quote direction.
func (m Model) direction() pricingdomain.Direction {
	switch {
	case m.mode == ModeSell && m.side == SidePT:
		return pricingdomain.DirPTToSY
	case m.mode == ModeSell && m.side == SideYT:
		return pricingdomain.DirYTToSY
	case m.mode == ModeBuy && m.side == SidePT:
		return pricingdomain.DirSYToPT
	default:
		return pricingdomain.DirSYToYT
	}
}

// requestQuote runs the quote for the current input against the ledger.
func (m Model) requestQuote(gen uint64) tea.Cmd {
	mk := m.market()
	amount := strings.TrimSpace(m.input.Value())
	dir := m.direction()
	quoter := m.quoter
	slippage := m.slippage

	return func() tea.Msg {
		if mk == nil || amount == "" {
			return nil
		}
		coin := mk.SY
		switch dir {
		case pricingdomain.DirPTToSY:
			coin = mk.PT
		case pricingdomain.DirYTToSY:
			coin = mk.YT
		}
		amt, err := asset.ParseString(coin, amount)
		if err != nil || !amt.IsPositive() {
			return QuoteFailedMsg{Generation: gen, Reason: "invalid amount"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
		defer cancel()

		quote, err := quoter.Quote(ctx, mk, dir, amt.Raw())
		if err != nil {
			return QuoteFailedMsg{Generation: gen, Reason: err.Error()}
		}

		minOut, err := tradedomain.MinOut(quote.Out, slippage)
		if err != nil {
			return QuoteFailedMsg{Generation: gen, Reason: err.Error()}
		}

		return QuoteResultMsg{
			Generation: gen,
			Market:     mk.Symbol,
			In:         asset.ScaleToHuman(quote.In, mk.Decimals()),
			Out:        asset.ScaleToHuman(quote.Out, mk.Decimals()),
			MinOut:     asset.ScaleToHuman(minOut, mk.Decimals()),
			At:         quote.At,
		}
	}
}

// scheduleQuote arms the debouncer; the trailing edge posts a QuoteRequestMsg
// back into the program.
func (m Model) scheduleQuote() {
	if strings.TrimSpace(m.input.Value()) == "" {
		m.debouncer.Cancel()
		return
	}
	m.debouncer.Do(func(gen uint64) {
		Send(QuoteRequestMsg{Generation: gen})
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.debouncer.Cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMarket):
			if len(m.markets) > 0 {
				m.marketIdx = (m.marketIdx + 1) % len(m.markets)
			}
			m.scheduleQuote()
			return m, m.fetchBalances()

		case key.Matches(msg, m.keys.ToggleSide):
			if m.side == SidePT {
				m.side = SideYT
			} else {
				m.side = SidePT
			}
			m.scheduleQuote()
			return m, nil

		case key.Matches(msg, m.keys.Flip):
			if m.mode == ModeBuy {
				m.mode = ModeSell
			} else {
				m.mode = ModeBuy
			}
			m.scheduleQuote()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.quotes.Clear()
			m.lastError = ""
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

		// Everything else goes to the amount input.
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.scheduleQuote()
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case QuoteRequestMsg:
		// Keystrokes after the debounce fired supersede this request.
		if msg.Generation != m.debouncer.Generation() {
			return m, nil
		}
		m.quoting = true
		return m, m.requestQuote(msg.Generation)

	case QuoteResultMsg:
		m.quoting = false
		if msg.Generation != m.debouncer.Generation() {
			return m, nil
		}
		label := fmt.Sprintf("%s %s", m.mode, m.side)
		m.quotes.Add(components.QuoteRow{
			At:     msg.At,
			Market: msg.Market,
			Label:  label,
			In:     msg.In,
			Out:    msg.Out,
			MinOut: msg.MinOut,
		})

	case QuoteFailedMsg:
		m.quoting = false
		if msg.Generation != m.debouncer.Generation() {
			return m, nil
		}
		m.lastError = msg.Reason
		m.lastErrorAt = time.Now()

	case CheckpointMsg:
		m.lastCheckpoint = msg.Sequence
		m.quotes.MarkStale()
		m.status.Update(components.ConnectionStatus{
			Name:           "Ledger",
			Connected:      true,
			LastCheckpoint: msg.Sequence,
			LastUpdate:     time.Now(),
		})
		// Held quotes refer to pre-checkpoint state; requote the live input.
		m.scheduleQuote()
		return m, tea.Batch(m.listenCheckpoints(), m.fetchBalances())

	case BalancesMsg:
		m.balances.Update(components.Balances{
			Market:    msg.Market,
			PT:        msg.PT,
			YT:        msg.YT,
			LP:        msg.LP,
			UpdatedAt: time.Now(),
		})

	case ErrorMsg:
		m.lastError = msg.Error.Error()
		m.lastErrorAt = time.Now()
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}
	if !m.ready {
		return "\n  Loading...\n"
	}

	var b strings.Builder

	title := TitleStyle.Render(" 📈 Yield Quote Watch ")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	b.WriteString(m.renderPrompt())
	b.WriteString("\n\n")

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	b.WriteString(BoxStyle.Width(width).Render(m.quotes.View()))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(width).Render(m.balances.View()))
	b.WriteString("\n")

	if m.lastError != "" {
		errStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		ago := time.Since(m.lastErrorAt).Round(time.Second)
		b.WriteString(errStyle.Render(fmt.Sprintf("  ✗ %s ", m.lastError)))
		b.WriteString(MutedValue.Render(fmt.Sprintf("(%s ago, c: clear)", ago)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(HelpStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	} else {
		b.WriteString(HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}

	return b.String()
}

// renderPrompt renders the market/side/mode selector line and the input.
func (m Model) renderPrompt() string {
	mk := m.market()
	symbol := "no markets"
	if mk != nil {
		symbol = mk.Symbol
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	line := fmt.Sprintf("  %s %s on %s @ %s%% slippage",
		selected.Render(string(m.mode)),
		selected.Render(string(m.side)),
		selected.Render(symbol),
		m.slippage.String(),
	)

	return line + "\n\n  Amount: " + m.input.View()
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.quoting {
		spinners := []string{"⟳", "◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/100) % len(spinners)
		parts = append(parts, PositiveValue.Render(spinners[idx]+" Quoting"))
	}

	if m.lastCheckpoint > 0 {
		parts = append(parts, fmt.Sprintf("Checkpoint: #%d", m.lastCheckpoint))
	} else {
		parts = append(parts, MutedValue.Render("Waiting for checkpoints..."))
	}

	parts = append(parts, MutedValue.Render(fmt.Sprintf("Markets: %d", len(m.markets))))

	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program.
func Run(model Model) error {
	Program = tea.NewProgram(model, tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
