package apperror

import (
	"regexp"
	"strconv"
)

// The ledger surfaces contract rejections as text of the form
// "MoveAbort(MoveLocation { ... }, <code>) in command <n>". The numeric
// code is the only stable part; everything around it varies by node
// implementation.
var (
	abortPattern = regexp.MustCompile(`MoveAbort\(.*,\s*(\d+)\)`)
	codePattern  = regexp.MustCompile(`abort[ _]code[:=]?\s*(\d+)`)
)

// abortMessages maps protocol abort codes to display text.
var abortMessages = map[uint64]string{
	256: "Trade amount is zero",
	257: "Output below the slippage minimum, try again or raise tolerance",
	258: "Market has reached maturity, redeem instead of trading",
	259: "Insufficient liquidity in the pool for this trade size",
	260: "Swap would leave the pool imbalanced beyond the rate cap",
	261: "Position balance too small for the requested amount",
	262: "Market state is stale, retry after the next checkpoint",
	513: "Price voucher expired, re-fetch and retry",
	514: "Price voucher already consumed",
	515: "Oracle price outside the accepted confidence interval",
	768: "Yield factory is paused",
	769: "Market factory configuration mismatch",
}

// Translate maps a raw ledger error text to a display message. If the
// text contains a known abort code the mapped message is returned;
// unrecognized or malformed input passes through unchanged. Translate
// never fails: a failed lookup is simply the identity.
func Translate(raw string) string {
	code, ok := extractAbortCode(raw)
	if !ok {
		return raw
	}
	msg, ok := abortMessages[code]
	if !ok {
		return raw
	}
	return msg
}

func extractAbortCode(raw string) (uint64, bool) {
	for _, re := range []*regexp.Regexp{abortPattern, codePattern} {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		code, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		return code, true
	}
	return 0, false
}
