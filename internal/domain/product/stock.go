package product

import (
	"strconv"
)

const (
	DisplayUnlimited  = "∞"
	DisplayOutOfStock = "out of stock"
)

type StockKind int

const (
	StockUnlimited StockKind = iota + 1
	StockCounted
	StockPool
)

func (k StockKind) String() string {
	switch k {
	case StockUnlimited:
		return "unlimited"
	case StockCounted:
		return "counted"
	case StockPool:
		return "pool"
	default:
		return "unknown"
	}
}

// Stock is one of Unlimited, Counted(n) or Pool(credentials). The zero value is invalid.
type Stock struct {
	kind  StockKind
	count int
	pool  []Credential
}

func Unlimited() Stock {
	return Stock{kind: StockUnlimited}
}

func Counted(n int) (Stock, error) {
	if n < 0 {
		return Stock{}, ErrNegativeStock
	}
	return Stock{kind: StockCounted, count: n}, nil
}

// Pool keeps the given order; index 0 is handed out first.
func Pool(creds []Credential) (Stock, error) {
	for _, c := range creds {
		if c.IsZero() {
			return Stock{}, ErrEmptyCredential
		}
	}
	return Stock{kind: StockPool, pool: append([]Credential(nil), creds...)}, nil
}

func (s Stock) Kind() StockKind { return s.kind }

func (s Stock) IsUnlimited() bool { return s.kind == StockUnlimited }

// Count is the number of purchasable units. It is 0 for Unlimited; check IsUnlimited first.
func (s Stock) Count() int {
	switch s.kind {
	case StockCounted:
		return s.count
	case StockPool:
		return len(s.pool)
	default:
		return 0
	}
}

func (s Stock) Credentials() []Credential {
	return append([]Credential(nil), s.pool...)
}

func (s Stock) CanTake(qty int) bool {
	switch s.kind {
	case StockUnlimited:
		return true
	case StockCounted, StockPool:
		return s.Count() >= qty
	default:
		return false
	}
}

// Take removes qty units and returns the new stock. The receiver is never modified.
func (s Stock) Take(qty int) (Stock, Allocation, error) {
	if qty <= 0 {
		return s, Allocation{}, ErrInvalidQuantity
	}
	switch s.kind {
	case StockUnlimited:
		return s, Allocation{Quantity: qty, Unlimited: true}, nil
	case StockCounted:
		if s.count < qty {
			return s, Allocation{}, ErrInsufficientStock
		}
		next := Stock{kind: StockCounted, count: s.count - qty}
		return next, Allocation{Quantity: qty, Remaining: next.count}, nil
	case StockPool:
		if len(s.pool) < qty {
			return s, Allocation{}, ErrInsufficientStock
		}
		taken := append([]Credential(nil), s.pool[:qty]...)
		next := Stock{kind: StockPool, pool: append([]Credential(nil), s.pool[qty:]...)}
		return next, Allocation{Quantity: qty, Credentials: taken, Remaining: len(next.pool)}, nil
	default:
		return s, Allocation{}, ErrInvalidStock
	}
}

// Add appends credentials to a pool. Other stock kinds reject it.
func (s Stock) Add(creds []Credential) (Stock, error) {
	if s.kind != StockPool {
		return s, ErrStockKindMismatch
	}
	for _, c := range creds {
		if c.IsZero() {
			return s, ErrEmptyCredential
		}
	}
	pool := make([]Credential, 0, len(s.pool)+len(creds))
	pool = append(pool, s.pool...)
	pool = append(pool, creds...)
	return Stock{kind: StockPool, pool: pool}, nil
}

func (s Stock) Display() string {
	switch s.kind {
	case StockUnlimited:
		return DisplayUnlimited
	case StockCounted, StockPool:
		if n := s.Count(); n > 0 {
			return strconv.Itoa(n)
		}
		return DisplayOutOfStock
	default:
		return DisplayOutOfStock
	}
}
