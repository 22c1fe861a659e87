package purchase

// State is a step of the fulfillment pipeline, in order.
type State string

const (
	StateLinkSubmitted      State = "link_submitted"
	StateSessionReady       State = "session_ready"
	StateLinkVerified       State = "link_verified"
	StateAmountChecked      State = "amount_checked"
	StateIdempotencyChecked State = "idempotency_checked"
	StateFundsClaimed       State = "funds_claimed"
	StateStockAllocated     State = "stock_allocated"
	StateDispatched         State = "dispatched"
	StateLogged             State = "logged"
)

func (s State) String() string {
	return string(s)
}

// FundsTaken reports whether the buyer's money has left their account at this state.
func (s State) FundsTaken() bool {
	switch s {
	case StateFundsClaimed, StateStockAllocated, StateDispatched, StateLogged:
		return true
	default:
		return false
	}
}

// Outcome is the terminal result of a purchase.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeInvalidIntent     Outcome = "invalid_intent"
	OutcomeProductNotFound   Outcome = "product_not_found"
	OutcomeConfigMissing     Outcome = "config_missing"
	OutcomeCryptoError       Outcome = "crypto_error"
	OutcomeSessionExpired    Outcome = "session_expired"
	OutcomeProviderDown      Outcome = "provider_unavailable"
	OutcomeLinkCheckFailed   Outcome = "link_check_failed"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeAlreadyConsumed   Outcome = "already_consumed"
	OutcomeClaimInProgress   Outcome = "claim_in_progress"
	OutcomeClaimFailed       Outcome = "claim_failed"
	OutcomeInsufficientStock Outcome = "insufficient_stock"
	OutcomeDispatchFailed    Outcome = "dispatch_failed"
	OutcomeInternal          Outcome = "internal_error"
)

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}
