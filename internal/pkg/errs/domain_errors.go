package errs

import "errors"

// Fulfillment outcome taxonomy. Every failure a purchase can end in is one of these,
// attached with Mark so the original cause stays available for logging.
var (
	// Session / vault errors
	ErrSessionExpired = errors.New("provider session expired")
	ErrCrypto         = errors.New("credential decryption failed")
	ErrConfigMissing  = errors.New("required configuration missing")

	// Provider errors
	ErrProviderUnauthorized = errors.New("provider rejected access token")
	ErrProviderUnavailable  = errors.New("payment provider unavailable")
	ErrLinkCheckFailed      = errors.New("payment link check failed")
	ErrClaimFailed          = errors.New("payment claim failed")
	ErrLinkAlreadyUsed      = errors.New("payment link already received")

	// Purchase errors
	ErrInvalidIntent     = errors.New("invalid purchase intent")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyConsumed   = errors.New("payment link already consumed")
	ErrClaimInProgress   = errors.New("payment link claim in progress")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDispatchFailed    = errors.New("goods dispatch failed")

	// Catalog errors
	ErrCatalogNotFound = errors.New("catalog not found")

	// Query errors
	ErrInvalidCursor = errors.New("invalid page cursor")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
