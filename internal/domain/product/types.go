package product

// Kind decides what a buyer receives on fulfillment.
type Kind string

const (
	// KindLink delivers the product URL.
	KindLink Kind = "link"
	// KindCounted delivers a confirmation (and the URL when set) against a numeric stock.
	KindCounted Kind = "counted"
	// KindCredentialPool delivers one-time credentials taken from the pool.
	KindCredentialPool Kind = "credential_pool"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindLink, KindCounted, KindCredentialPool:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Credential is an opaque one-time secret. It is handed to exactly one buyer.
type Credential struct {
	Login  string
	Secret string
	Note   string
}

func (c Credential) IsZero() bool {
	return c.Login == "" && c.Secret == ""
}

// Allocation is the result of a successful stock take.
type Allocation struct {
	ProductID   string
	Quantity    int
	Credentials []Credential
	Remaining   int
	Unlimited   bool
}
