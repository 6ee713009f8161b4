// Package infra contains infrastructure adapters for the trade context.
package infra

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pricingdomain "github.com/fd1az/yieldsplit/business/pricing/domain"
	tradedomain "github.com/fd1az/yieldsplit/business/trade/domain"
	"github.com/fd1az/yieldsplit/internal/asset"
)

// ConsoleReporter prints action results for CLI output.
type ConsoleReporter struct {
	out         io.Writer
	explorerURL string
}

// NewConsoleReporter creates a new ConsoleReporter. explorerURL may be empty.
func NewConsoleReporter(explorerURL string) *ConsoleReporter {
	return &ConsoleReporter{
		out:         os.Stdout,
		explorerURL: explorerURL,
	}
}

// Report outputs the terminal state of one composed action.
func (r *ConsoleReporter) Report(result *tradedomain.ActionResult, decimals uint8) {
	line := strings.Repeat("=", 80)
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, line)
	fmt.Fprintf(r.out, "ACTION %s: %s\n", strings.ToUpper(string(result.Kind)), strings.ToUpper(string(result.State)))
	fmt.Fprintln(r.out, line)
	fmt.Fprintf(r.out, "Timestamp:      %s\n", time.Now().Format(time.RFC3339))
	if result.Quoted != nil {
		fmt.Fprintf(r.out, "Quoted out:     %s\n", asset.ScaleToHuman(result.Quoted, decimals))
	}
	if result.MinOut != nil {
		fmt.Fprintf(r.out, "Minimum out:    %s\n", asset.ScaleToHuman(result.MinOut, decimals))
	}
	if result.Plan != nil {
		fmt.Fprintf(r.out, "Operations:     %d\n", result.Plan.Len())
		for i, kind := range result.Plan.Kinds() {
			fmt.Fprintf(r.out, "  %d. %s\n", i+1, kind)
		}
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	if result.OK() {
		fmt.Fprintf(r.out, "Transaction:    %s\n", result.Digest)
		if r.explorerURL != "" {
			fmt.Fprintf(r.out, "Explorer:       %s/tx/%s\n", strings.TrimRight(r.explorerURL, "/"), result.Digest)
		}
	} else if result.Err != nil {
		fmt.Fprintf(r.out, "Error:          %s\n", result.Err.Display())
	}
	fmt.Fprintln(r.out, line)
}

// ReportQuote outputs a standalone quote without submitting anything.
func (r *ConsoleReporter) ReportQuote(market string, in, out decimal.Decimal) {
	fmt.Fprintf(r.out, "[%s] %s: %s in -> %s out\n", time.Now().Format("15:04:05"), market, in, out)
}

// ReportSnapshot outputs current unit rates for a market. Undefined legs
// print as n/a rather than zero.
func (r *ConsoleReporter) ReportSnapshot(s *pricingdomain.RateSnapshot) {
	fmt.Fprintf(r.out, "[%s] %s rates\n", s.At.Format("15:04:05"), s.Market)
	fmt.Fprintf(r.out, "  SY per PT:  %s\n", ratioString(s.SYPerPT))
	fmt.Fprintf(r.out, "  SY per YT:  %s\n", ratioString(s.SYPerYT))
	fmt.Fprintf(r.out, "  SY per LP:  %s\n", ratioString(s.SYPerLP))
	if rate, ok := s.SYPerPT.Rate(); ok {
		discount := decimal.NewFromInt(1).Sub(rate).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(r.out, "  PT discount: %s%%\n", discount.StringFixed(2))
	}
}

func ratioString(r asset.Ratio) string {
	rate, ok := r.Rate()
	if !ok {
		return "n/a"
	}
	return rate.String()
}
