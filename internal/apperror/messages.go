package apperror

// messages maps error codes to human-readable messages.
var messages = map[Code]string{
	// Preconditions
	CodeZeroAmount:          "Amount must be greater than zero",
	CodeInvalidAmount:       "Invalid amount",
	CodeInvalidSlippage:     "Slippage tolerance must be between 0 and 100",
	CodeInsufficientBalance: "Insufficient balance for this trade",
	CodeMissingMarketField:  "Market configuration is incomplete",
	CodeMarketExpired:       "Market has reached maturity",
	CodeUnknownMarket:       "Unknown market",

	// Quote and simulation
	CodeQuoteUnavailable:  "Quote unavailable for this amount",
	CodeSimulationFailed:  "Transaction simulation failed",
	CodeEmptyReturnValues: "Simulation returned no values",

	// Ledger
	CodeOnChainAbort:       "Transaction rejected on-chain",
	CodeSubmissionRejected: "Transaction submission rejected",
	CodeRPCError:           "Ledger RPC call failed",
	CodeObjectQueryFailed:  "Failed to query owned objects",
	CodeSignerUnavailable:  "Wallet signer unavailable",

	// System
	CodeConfigurationError: "Configuration error",
	CodeTransportError:     "External service error",
	CodeCircuitOpen:        "Circuit breaker is open",
	CodeRateLimited:        "Rate limit exceeded",
	CodeInternalError:      "Internal error",
	CodeUnknownError:       "An unknown error occurred",
}
