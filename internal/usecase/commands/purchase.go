package commands

//go:generate mockgen -source=purchase.go -destination=../../../tests/mock/commands/purchase.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"

	"github.com/google/uuid"
)

// ProgressFunc receives buyer-facing status lines as the purchase advances.
type ProgressFunc func(state purchase.State, message string)

type PurchaseResult struct {
	Outcome purchase.Outcome
	// State is the last state reached before the outcome was decided.
	State   purchase.State
	Payload purchase.Payload
	// RecordID is set whenever funds were claimed.
	RecordID            uuid.UUID
	NeedsReconciliation bool
	Err                 error
}

type PurchaseSettings struct {
	ProviderTimeout time.Duration
	DispatchTimeout time.Duration
	ClaimLease      time.Duration
}

type PurchaseCommands interface {
	// Purchase runs one intent to a terminal outcome. It never returns a nil result;
	// failures are reported through the result's Outcome and Err.
	Purchase(ctx context.Context, in purchase.Intent, progress ProgressFunc) *PurchaseResult
}

type purchaseCommandsImpl struct {
	products   shared.ProductRepository
	catalogs   shared.CatalogRepository
	ledger     shared.LedgerRepository
	purchases  shared.PurchaseRepository
	sessions   SessionCommands
	provider   shared.PaymentProvider
	dispatcher shared.Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
	settings   PurchaseSettings
}

func NewPurchaseCommands(
	products shared.ProductRepository,
	catalogs shared.CatalogRepository,
	ledger shared.LedgerRepository,
	purchases shared.PurchaseRepository,
	sessions SessionCommands,
	provider shared.PaymentProvider,
	dispatcher shared.Dispatcher,
	clock clock.Clock,
	logger *slog.Logger,
	settings PurchaseSettings,
) PurchaseCommands {
	return &purchaseCommandsImpl{
		products:   products,
		catalogs:   catalogs,
		ledger:     ledger,
		purchases:  purchases,
		sessions:   sessions,
		provider:   provider,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger,
		settings:   settings,
	}
}

func (o *purchaseCommandsImpl) Purchase(ctx context.Context, in purchase.Intent, progress ProgressFunc) *PurchaseResult {
	r := &purchaseRun{
		purchaseCommandsImpl: o,
		in:                   in,
		linkID:               in.LinkID(),
		progress:             progress,
		state:                purchase.StateLinkSubmitted,
		log: o.logger.With(
			slog.String("tenant", in.TenantID),
			slog.String("product_id", in.ProductID),
			slog.String("buyer_id", in.BuyerID),
			slog.String("link_id", in.LinkID()),
		),
	}
	return r.execute(ctx)
}

// purchaseRun carries one intent through the pipeline.
type purchaseRun struct {
	*purchaseCommandsImpl
	in       purchase.Intent
	linkID   string
	progress ProgressFunc
	state    purchase.State
	log      *slog.Logger

	product *product.Product
	total   int64
	info    shared.LinkInfo
}

func (r *purchaseRun) execute(ctx context.Context) *PurchaseResult {
	if err := r.in.Validate(); err != nil {
		return r.fail(purchase.OutcomeInvalidIntent, errs.Mark(err, errs.ErrInvalidIntent))
	}

	p, err := r.products.FindByID(ctx, r.in.TenantID, r.in.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return r.fail(purchase.OutcomeProductNotFound, errs.Mark(err, errs.ErrProductNotFound))
		}
		return r.fail(purchase.OutcomeInternal, errs.Wrap(err, "load product"))
	}
	r.product = p

	total, err := p.TotalPrice(r.in.Quantity)
	if err != nil {
		return r.fail(purchase.OutcomeInvalidIntent, errs.Mark(err, errs.ErrInvalidIntent))
	}
	r.total = total

	r.report("Checking the shop's payment session...")
	sess, err := r.sessions.Acquire(ctx, r.in.TenantID)
	if err != nil {
		return r.fail(outcomeFor(err, purchase.OutcomeInternal), err)
	}
	r.advance(purchase.StateSessionReady)

	r.report("Verifying your payment link...")
	info, err := r.checkLink(ctx, sess)
	if err != nil {
		return r.fail(outcomeFor(err, purchase.OutcomeLinkCheckFailed), err)
	}
	r.info = info
	r.advance(purchase.StateLinkVerified)

	if info.Amount < total {
		err := errs.Mark(errs.Newf("link amount %d below required %d", info.Amount, total), errs.ErrInsufficientFunds)
		return r.fail(purchase.OutcomeInsufficientFunds, err)
	}
	r.advance(purchase.StateAmountChecked)

	if res := r.guardLink(ctx); res != nil {
		return res
	}
	r.advance(purchase.StateIdempotencyChecked)

	r.report("Receiving your payment...")
	if err := r.claim(ctx, sess); err != nil {
		if errs.Is(err, errs.ErrLinkAlreadyUsed) {
			r.markConsumed(ctx)
			return r.fail(purchase.OutcomeAlreadyConsumed, errs.Mark(err, errs.ErrAlreadyConsumed))
		}
		r.releaseLease(ctx)
		return r.fail(outcomeFor(err, purchase.OutcomeClaimFailed), err)
	}
	r.advance(purchase.StateFundsClaimed)

	// Funds have left the sender; nothing below may be cut short by the caller.
	return r.fulfill(context.WithoutCancel(ctx))
}

func (r *purchaseRun) checkLink(ctx context.Context, sess shared.ProviderSession) (shared.LinkInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.ProviderTimeout)
	defer cancel()
	return r.provider.CheckLink(ctx, sess, r.in.Link)
}

// guardLink returns a terminal result when the link must not be claimed.
func (r *purchaseRun) guardLink(ctx context.Context) *PurchaseResult {
	consumed, err := r.ledger.IsConsumed(ctx, r.in.TenantID, r.linkID)
	if err != nil {
		return r.fail(purchase.OutcomeInternal, errs.Wrap(err, "check ledger"))
	}
	if consumed || r.info.IsTerminal() {
		r.markConsumed(ctx)
		err := errs.Mark(errs.Newf("link consumed (ledger=%t, provider status=%s)", consumed, r.info.Status), errs.ErrAlreadyConsumed)
		return r.fail(purchase.OutcomeAlreadyConsumed, err)
	}

	now := r.clock.Now()
	if err := r.ledger.Begin(ctx, r.in.TenantID, r.linkID, now, now.Add(r.settings.ClaimLease)); err != nil {
		switch {
		case errs.Is(err, errs.ErrAlreadyConsumed):
			return r.fail(purchase.OutcomeAlreadyConsumed, err)
		case errs.Is(err, errs.ErrClaimInProgress):
			return r.fail(purchase.OutcomeClaimInProgress, err)
		default:
			return r.fail(purchase.OutcomeInternal, errs.Wrap(err, "begin ledger lease"))
		}
	}
	return nil
}

func (r *purchaseRun) claim(ctx context.Context, sess shared.ProviderSession) error {
	// A claim already sent is waited for even if the caller goes away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.settings.ProviderTimeout)
	defer cancel()
	return r.provider.Claim(ctx, sess, r.in.Link, r.in.Password)
}

func (r *purchaseRun) fulfill(ctx context.Context) *PurchaseResult {
	r.report("Preparing your order...")
	alloc, err := r.products.Allocate(ctx, r.in.TenantID, r.in.ProductID, r.in.Quantity)
	if err != nil {
		if errs.IsAny(err, product.ErrInsufficientStock, errs.ErrInsufficientStock) {
			return r.failAfterClaim(ctx, purchase.OutcomeInsufficientStock, errs.Mark(err, errs.ErrInsufficientStock))
		}
		return r.failAfterClaim(ctx, purchase.OutcomeInternal, errs.Wrap(err, "allocate stock"))
	}
	r.advance(purchase.StateStockAllocated)

	r.report("Delivering your order...")
	if err := r.deliver(ctx, alloc); err != nil {
		return r.failAfterClaim(ctx, purchase.OutcomeDispatchFailed, errs.Mark(err, errs.ErrDispatchFailed))
	}
	r.advance(purchase.StateDispatched)

	r.markConsumed(ctx)
	r.grantRewardRole(ctx)
	rec := r.record(purchase.RecordCompleted, purchase.OutcomeSuccess, "")
	if err := r.purchases.Append(ctx, rec); err != nil {
		r.log.Error("failed to append purchase record", slog.String("record_id", rec.ID.String()), slog.Any("error", err))
	}
	r.postPurchaseLog(ctx)
	r.advance(purchase.StateLogged)

	r.log.Info("purchase completed",
		slog.Int("quantity", r.in.Quantity),
		slog.Int64("total", r.total),
		slog.Int64("amount", r.info.Amount),
		slog.String("record_id", rec.ID.String()),
	)
	return &PurchaseResult{
		Outcome:  purchase.OutcomeSuccess,
		State:    r.state,
		Payload:  r.successPayload(alloc),
		RecordID: rec.ID,
	}
}

func (r *purchaseRun) deliver(ctx context.Context, alloc product.Allocation) error {
	ctx, cancel := context.WithTimeout(ctx, r.settings.DispatchTimeout)
	defer cancel()
	return r.dispatcher.DeliverGoods(ctx, shared.Delivery{
		TenantID:    r.in.TenantID,
		BuyerID:     r.in.BuyerID,
		ProductID:   r.product.ID(),
		ProductName: r.product.Name(),
		Quantity:    alloc.Quantity,
		URL:         r.product.URL(),
		Credentials: alloc.Credentials,
	})
}

func (r *purchaseRun) grantRewardRole(ctx context.Context) {
	if r.product.CatalogID() == "" {
		return
	}
	c, err := r.catalogs.FindByID(ctx, r.in.TenantID, r.product.CatalogID())
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			r.log.Warn("failed to load catalog for reward role", slog.Any("error", err))
		}
		return
	}
	if !c.HasRewardRole() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.settings.DispatchTimeout)
	defer cancel()
	if err := r.dispatcher.GrantRole(ctx, r.in.TenantID, r.in.BuyerID, c.RewardRoleID()); err != nil {
		r.log.Warn("failed to grant reward role", slog.String("role_id", c.RewardRoleID()), slog.Any("error", err))
	}
}

func (r *purchaseRun) postPurchaseLog(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.DispatchTimeout)
	defer cancel()
	err := r.dispatcher.PostPurchaseLog(ctx, shared.PurchaseLog{
		TenantID:    r.in.TenantID,
		BuyerID:     r.in.BuyerID,
		ProductName: r.product.Name(),
		Quantity:    r.in.Quantity,
		Total:       r.total,
		SenderName:  r.info.SenderName,
		SenderID:    r.info.SenderID,
		SenderIcon:  r.info.IconURL,
		Link:        r.in.Link,
	})
	if err != nil {
		r.log.Warn("failed to post purchase log", slog.Any("error", err))
	}
}

func (r *purchaseRun) markConsumed(ctx context.Context) {
	if err := r.ledger.MarkConsumed(ctx, r.in.TenantID, r.linkID, r.clock.Now()); err != nil {
		r.log.Error("failed to mark link consumed", slog.String("state", r.state.String()), slog.Any("error", err))
	}
}

func (r *purchaseRun) releaseLease(ctx context.Context) {
	if err := r.ledger.Release(context.WithoutCancel(ctx), r.in.TenantID, r.linkID); err != nil {
		r.log.Warn("failed to release ledger lease", slog.Any("error", err))
	}
}

func (r *purchaseRun) record(status purchase.RecordStatus, outcome purchase.Outcome, detail string) purchase.Record {
	return purchase.Record{
		ID:         uuid.New(),
		TenantID:   r.in.TenantID,
		ProductID:  r.in.ProductID,
		BuyerID:    r.in.BuyerID,
		SenderName: r.info.SenderName,
		SenderID:   r.info.SenderID,
		LinkID:     r.linkID,
		Link:       r.in.Link,
		Quantity:   r.in.Quantity,
		Total:      r.total,
		Amount:     r.info.Amount,
		Status:     status,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  r.clock.Now(),
	}
}

func (r *purchaseRun) advance(s purchase.State) {
	r.state = s
	r.log.Debug("purchase advanced", slog.String("state", s.String()))
}

func (r *purchaseRun) report(msg string) {
	if r.progress != nil {
		r.progress(r.state, msg)
	}
}

func (r *purchaseRun) fail(outcome purchase.Outcome, err error) *PurchaseResult {
	r.log.Info("purchase rejected",
		slog.String("outcome", outcome.String()),
		slog.String("state", r.state.String()),
		slog.Any("error", err),
	)
	return &PurchaseResult{
		Outcome: outcome,
		State:   r.state,
		Payload: r.failurePayload(outcome),
		Err:     err,
	}
}

// failAfterClaim ends a purchase whose funds are already taken. The link is
// consumed and a reconciliation record is left for an operator.
func (r *purchaseRun) failAfterClaim(ctx context.Context, outcome purchase.Outcome, err error) *PurchaseResult {
	r.markConsumed(ctx)

	rec := r.record(purchase.RecordNeedsReconciliation, outcome, err.Error())
	if appendErr := r.purchases.Append(ctx, rec); appendErr != nil {
		r.log.Error("failed to append reconciliation record", slog.Any("error", appendErr))
	}
	r.log.Error("purchase failed after funds were claimed",
		slog.String("outcome", outcome.String()),
		slog.String("state", r.state.String()),
		slog.Int64("amount", r.info.Amount),
		slog.String("record_id", rec.ID.String()),
		slog.Any("error", err),
	)

	payload := r.failurePayload(outcome)
	payload.AddField("Reference", rec.ID.String(), false)
	return &PurchaseResult{
		Outcome:             outcome,
		State:               r.state,
		Payload:             payload,
		RecordID:            rec.ID,
		NeedsReconciliation: true,
		Err:                 err,
	}
}

func outcomeFor(err error, fallback purchase.Outcome) purchase.Outcome {
	switch {
	case errs.Is(err, errs.ErrConfigMissing):
		return purchase.OutcomeConfigMissing
	case errs.Is(err, errs.ErrCrypto):
		return purchase.OutcomeCryptoError
	case errs.Is(err, errs.ErrSessionExpired):
		return purchase.OutcomeSessionExpired
	case errs.Is(err, errs.ErrProviderUnavailable):
		return purchase.OutcomeProviderDown
	case errs.Is(err, errs.ErrLinkCheckFailed):
		return purchase.OutcomeLinkCheckFailed
	case errs.Is(err, errs.ErrClaimFailed):
		return purchase.OutcomeClaimFailed
	default:
		return fallback
	}
}

var failureMessages = map[purchase.Outcome]purchase.Payload{
	purchase.OutcomeInvalidIntent:     {Title: "Invalid request", Description: "Check the quantity and the payment link, then try again."},
	purchase.OutcomeProductNotFound:   {Title: "Product not found", Description: "This product is no longer available."},
	purchase.OutcomeConfigMissing:     {Title: "Shop not ready", Description: "This shop has not finished setting up payments. Please contact the shop owner."},
	purchase.OutcomeCryptoError:       {Title: "Shop not ready", Description: "The shop's payment credentials could not be read. Please contact the shop owner."},
	purchase.OutcomeSessionExpired:    {Title: "Payment session expired", Description: "The shop's payment login has expired. Please contact the shop owner."},
	purchase.OutcomeProviderDown:      {Title: "Payment service unavailable", Description: "The payment service could not be reached. Please try again later."},
	purchase.OutcomeLinkCheckFailed:   {Title: "Link could not be verified", Description: "Make sure you pasted a valid, unused payment link."},
	purchase.OutcomeInsufficientFunds: {Title: "Amount too low", Description: "The payment link does not cover the price of your order."},
	purchase.OutcomeAlreadyConsumed:   {Title: "Link already used", Description: "This payment link has already been used."},
	purchase.OutcomeClaimInProgress:   {Title: "Link being processed", Description: "This payment link is already being processed. Please wait."},
	purchase.OutcomeClaimFailed:       {Title: "Payment not received", Description: "The payment could not be received. Check the link password and try again."},
	purchase.OutcomeInsufficientStock: {Title: "Out of stock", Description: "Your payment was received but the product sold out. The shop owner will contact you."},
	purchase.OutcomeDispatchFailed:    {Title: "Delivery failed", Description: "Your payment was received but we could not message you. Open your DMs and contact the shop owner."},
	purchase.OutcomeInternal:          {Title: "Something went wrong", Description: "Please try again later."},
}

func (r *purchaseRun) failurePayload(outcome purchase.Outcome) purchase.Payload {
	p, ok := failureMessages[outcome]
	if !ok {
		p = failureMessages[purchase.OutcomeInternal]
	}
	p.Fields = nil
	if outcome == purchase.OutcomeInsufficientFunds {
		p.AddField("Required", yen(r.total), true)
		p.AddField("Received", yen(r.info.Amount), true)
	}
	return p
}

func (r *purchaseRun) successPayload(alloc product.Allocation) purchase.Payload {
	p := purchase.Payload{
		Title:       "Purchase complete",
		Description: "Thank you! Your order has been sent to your DMs.",
		IconURL:     r.info.IconURL,
	}
	p.AddField("Product", r.product.Name(), true)
	p.AddField("Quantity", strconv.Itoa(alloc.Quantity), true)
	p.AddField("Total", yen(r.total), true)
	if r.info.SenderName != "" {
		p.AddField("Paid by", r.info.SenderName, false)
	}
	return p
}

func yen(v int64) string {
	return strconv.FormatInt(v, 10) + " JPY"
}
