// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Balances holds per-market token balances for display.
type Balances struct {
	Market    string
	PT        decimal.Decimal
	YT        decimal.Decimal
	LP        decimal.Decimal
	UpdatedAt time.Time
}

// BalancesComponent renders the owner's position balances.
type BalancesComponent struct {
	balances Balances
	loaded   bool
}

// NewBalancesComponent creates a new balances component.
func NewBalancesComponent() *BalancesComponent {
	return &BalancesComponent{}
}

// Update updates the displayed balances.
func (b *BalancesComponent) Update(balances Balances) {
	b.balances = balances
	b.loaded = true
}

// View renders the balances component.
func (b *BalancesComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	if !b.loaded {
		return style.Render("BALANCES") + "\n" + "Loading positions..."
	}

	return style.Render("BALANCES "+b.balances.Market) + "\n" +
		fmt.Sprintf("PT: %s  │  YT: %s  │  LP: %s  │  as of %s",
			valueStyle.Render(b.balances.PT.StringFixed(4)),
			valueStyle.Render(b.balances.YT.StringFixed(4)),
			valueStyle.Render(b.balances.LP.StringFixed(4)),
			b.balances.UpdatedAt.Format("15:04:05"),
		)
}
