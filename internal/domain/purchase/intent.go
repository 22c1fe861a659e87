package purchase

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMissingTenant   = errors.New("tenant id is required")
	ErrMissingBuyer    = errors.New("buyer id is required")
	ErrMissingProduct  = errors.New("product id is required")
	ErrEmptyLink       = errors.New("payment link is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// Intent is one buyer submission. It lives only for the duration of a purchase.
type Intent struct {
	TenantID  string
	BuyerID   string
	ProductID string
	Link      string
	Password  string
	Quantity  int
}

// NewIntent validates raw form input. quantityText must parse as a positive integer.
func NewIntent(tenantID, buyerID, productID, link, quantityText, password string) (Intent, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(quantityText))
	if err != nil {
		return Intent{}, ErrInvalidQuantity
	}
	in := Intent{
		TenantID:  strings.TrimSpace(tenantID),
		BuyerID:   strings.TrimSpace(buyerID),
		ProductID: strings.TrimSpace(productID),
		Link:      strings.TrimSpace(link),
		Password:  strings.TrimSpace(password),
		Quantity:  qty,
	}
	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}

func (in Intent) Validate() error {
	switch {
	case in.TenantID == "":
		return ErrMissingTenant
	case in.BuyerID == "":
		return ErrMissingBuyer
	case in.ProductID == "":
		return ErrMissingProduct
	case in.Quantity <= 0:
		return ErrInvalidQuantity
	case LinkID(in.Link) == "":
		return ErrEmptyLink
	}
	return nil
}

func (in Intent) LinkID() string {
	return LinkID(in.Link)
}

func (in Intent) HasPassword() bool {
	return in.Password != ""
}

// LinkID is the last non-empty path segment of a payment link, ignoring query and fragment.
func LinkID(link string) string {
	s := strings.TrimSpace(link)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
