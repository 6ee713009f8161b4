package apperror

// Code represents a unique error code for the application.
type Code string

// Precondition codes - rejected before any external call.
const (
	CodeZeroAmount          Code = "ZERO_AMOUNT"
	CodeInvalidAmount       Code = "INVALID_AMOUNT"
	CodeInvalidSlippage     Code = "INVALID_SLIPPAGE"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeMissingMarketField  Code = "MISSING_MARKET_FIELD"
	CodeMarketExpired       Code = "MARKET_EXPIRED"
	CodeUnknownMarket       Code = "UNKNOWN_MARKET"
)

// Quote and simulation codes.
const (
	CodeQuoteUnavailable  Code = "QUOTE_UNAVAILABLE"
	CodeSimulationFailed  Code = "SIMULATION_FAILED"
	CodeEmptyReturnValues Code = "EMPTY_RETURN_VALUES"
)

// Ledger codes.
const (
	CodeOnChainAbort       Code = "ON_CHAIN_ABORT"
	CodeSubmissionRejected Code = "SUBMISSION_REJECTED"
	CodeRPCError           Code = "RPC_ERROR"
	CodeObjectQueryFailed  Code = "OBJECT_QUERY_FAILED"
	CodeSignerUnavailable  Code = "SIGNER_UNAVAILABLE"
)

// System codes.
const (
	CodeConfigurationError Code = "CONFIGURATION_ERROR"
	CodeTransportError     Code = "TRANSPORT_ERROR"
	CodeCircuitOpen        Code = "CIRCUIT_OPEN"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternalError      Code = "INTERNAL_ERROR"
	CodeUnknownError       Code = "UNKNOWN_ERROR"
)

// kindOf maps a code to the reaction class the composer applies.
func kindOf(code Code) Kind {
	switch code {
	case CodeZeroAmount, CodeInvalidAmount, CodeInvalidSlippage,
		CodeInsufficientBalance, CodeMissingMarketField,
		CodeMarketExpired, CodeUnknownMarket:
		return KindPrecondition
	case CodeQuoteUnavailable, CodeSimulationFailed, CodeEmptyReturnValues:
		return KindQuote
	case CodeOnChainAbort, CodeSubmissionRejected:
		return KindAbort
	default:
		return KindTransport
	}
}
