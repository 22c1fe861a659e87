//go:build unit || integration || e2e

package builder

import (
	"strconv"

	"paylink-vending/internal/domain/purchase"
	reqdto "paylink-vending/internal/handler/dto/request"
)

type IntentBuilder struct {
	TenantID  string
	BuyerID   string
	ProductID string
	Link      string
	Password  string
	Quantity  int
}

func NewIntentBuilder() *IntentBuilder {
	return &IntentBuilder{
		TenantID:  "guild-1",
		BuyerID:   "buyer-42",
		ProductID: "item-1",
		Link:      "https://pay.example.jp/AbCdEf123",
		Quantity:  1,
	}
}

func (b *IntentBuilder) With(mutate func(*IntentBuilder)) *IntentBuilder {
	mutate(b)
	return b
}

func (b *IntentBuilder) BuildDomain() purchase.Intent {
	return purchase.Intent{
		TenantID:  b.TenantID,
		BuyerID:   b.BuyerID,
		ProductID: b.ProductID,
		Link:      b.Link,
		Password:  b.Password,
		Quantity:  b.Quantity,
	}
}

func (b *IntentBuilder) BuildDTO() reqdto.PurchaseRequest {
	return reqdto.PurchaseRequest{
		BuyerID:   b.BuyerID,
		ProductID: b.ProductID,
		Link:      b.Link,
		Password:  b.Password,
		Quantity:  strconv.Itoa(b.Quantity),
	}
}

func (b *IntentBuilder) WithLink(link string) *IntentBuilder {
	b.Link = link
	return b
}

func (b *IntentBuilder) WithQuantity(q int) *IntentBuilder {
	b.Quantity = q
	return b
}

func (b *IntentBuilder) WithPassword(pw string) *IntentBuilder {
	b.Password = pw
	return b
}

func (b *IntentBuilder) WithProduct(id string) *IntentBuilder {
	b.ProductID = id
	return b
}
