package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/checkout"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

const msgEmptyCart = "Your cart is empty. Please add items to your cart before checkout."

// 各ステップのフォーム入力
// 現在のステップに対応する項目だけ使う。
type StepInput struct {
	Shipping *model.Address
	Billing  *model.Address
	Contact  *checkout.Contact
	Card     *checkout.CardDetails
	Notes    *string
}

// 画面に渡すもの
type CheckoutView struct {
	Draft checkout.Draft
	Cart  *model.Cart
	Steps []checkout.Step
}

type CheckoutUsecase struct {
	drafts    repo.DraftRepository
	carts     repo.CartRepository
	orders    *OrderUsecase
	validator CheckoutValidator
	ids       IDGenerator
	clock     Clock
	logger    *zap.Logger
}

// DI
func NewCheckoutUsecase(
	drafts repo.DraftRepository,
	carts repo.CartRepository,
	orders *OrderUsecase,
	v CheckoutValidator,
	ids IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		drafts:    drafts,
		carts:     carts,
		orders:    orders,
		validator: v,
		ids:       ids,
		clock:     orSystemClock(clock),
		logger:    orNop(logger),
	}
}

// Start は新しいウィザードをcart_reviewから始める。
// 空のカートでは始めない。
func (u *CheckoutUsecase) Start(ctx context.Context, user model.User) (CheckoutView, error) {
	cart, err := u.freshCart(ctx)
	if err != nil {
		return CheckoutView{}, err
	}

	d := checkout.NewDraft(u.ids.NewID(), user.ID, user.Email, u.clock.Now())
	if err := u.drafts.Save(ctx, d); err != nil {
		return CheckoutView{}, NewHTTPError(http.StatusInternalServerError, "failed to start checkout")
	}
	return u.view(ctx, d, cart), nil
}

// Get は下書きを表示用に返す（カード番号は伏せる）
func (u *CheckoutUsecase) Get(ctx context.Context, userID, draftID string) (CheckoutView, error) {
	d, err := u.load(ctx, userID, draftID)
	if err != nil {
		return CheckoutView{}, err
	}

	return u.view(ctx, d, nil), nil
}

// Next は現在のステップを検証して進める。
// 検証に失敗したら入力は残したままステップは変えない。
func (u *CheckoutUsecase) Next(ctx context.Context, userID, draftID string, in StepInput) (CheckoutView, error) {
	d, err := u.load(ctx, userID, draftID)
	if err != nil {
		return CheckoutView{}, err
	}
	apply(d, in)

	var cart *model.Cart
	switch d.Step {
	case checkout.StepCartReview:
		cart, err = u.freshCart(ctx)
	case checkout.StepShipping:
		err = u.validator.ValidateShipping(d.Shipping)
	case checkout.StepBilling:
		err = u.validator.ValidateBilling(d.Billing)
	case checkout.StepPaymentMethod:
		err = u.validator.ValidateContact(d.Contact)
	case checkout.StepPaymentDetails:
		err = u.validator.ValidateCard(d.Card)
	case checkout.StepReview:
		err = NewHTTPError(http.StatusBadRequest, "use place order to finish checkout")
	}

	if err == nil {
		if aerr := d.Advance(u.clock.Now()); aerr != nil {
			err = NewHTTPError(http.StatusBadRequest, "cannot advance from this step")
		}
	}
	if serr := u.drafts.Save(ctx, d); serr != nil {
		u.logger.Warn("checkout draft save failed", zap.String("draft_id", d.ID), zap.Error(serr))
	}
	if err != nil {
		return u.view(ctx, d, cart), err
	}
	return u.view(ctx, d, cart), nil
}

// Back は検証せずに一つ戻る。
func (u *CheckoutUsecase) Back(ctx context.Context, userID, draftID string, in StepInput) (CheckoutView, error) {
	d, err := u.load(ctx, userID, draftID)
	if err != nil {
		return CheckoutView{}, err
	}
	apply(d, in)
	d.Retreat(u.clock.Now())

	if err := u.drafts.Save(ctx, d); err != nil {
		return CheckoutView{}, NewHTTPError(http.StatusInternalServerError, "failed to save checkout")
	}
	return u.view(ctx, d, nil), nil
}

// CopyBilling は配送先を請求先に値コピーする。
func (u *CheckoutUsecase) CopyBilling(ctx context.Context, userID, draftID string) (CheckoutView, error) {
	d, err := u.load(ctx, userID, draftID)
	if err != nil {
		return CheckoutView{}, err
	}
	d.CopyShippingToBilling()
	d.UpdatedAt = u.clock.Now()

	if err := u.drafts.Save(ctx, d); err != nil {
		return CheckoutView{}, NewHTTPError(http.StatusInternalServerError, "failed to save checkout")
	}
	return u.view(ctx, d, nil), nil
}

// Place はreviewステップから注文を確定する。
// reviewで入力された備考を反映してから送る。成功したら下書きは消す。
func (u *CheckoutUsecase) Place(ctx context.Context, userID, draftID string, in StepInput) (PlaceOrderResult, error) {
	d, err := u.load(ctx, userID, draftID)
	if err != nil {
		return PlaceOrderResult{Message: UserMessage(err)}, err
	}
	if d.Step != checkout.StepReview {
		err := NewHTTPError(http.StatusBadRequest, "Please complete all checkout steps")
		return PlaceOrderResult{Message: UserMessage(err)}, err
	}
	apply(d, in)
	d.UpdatedAt = u.clock.Now()
	if serr := u.drafts.Save(ctx, d); serr != nil {
		u.logger.Warn("checkout draft save failed", zap.String("draft_id", d.ID), zap.Error(serr))
	}

	res, err := u.orders.PlaceOrder(ctx, userID, d)
	if err != nil {
		return res, err
	}
	if derr := u.drafts.Delete(ctx, d.ID); derr != nil {
		u.logger.Warn("checkout draft delete failed", zap.String("draft_id", d.ID), zap.Error(derr))
	}
	return res, nil
}

func (u *CheckoutUsecase) load(ctx context.Context, userID, draftID string) (*checkout.Draft, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, NewHTTPError(http.StatusNotFound, "checkout session expired")
	}
	d, err := u.drafts.Find(ctx, draftID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "checkout session expired")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to load checkout")
	}
	//他人の下書きは見せない
	if d.UserID != userID {
		return nil, NewHTTPError(http.StatusNotFound, "checkout session expired")
	}
	return d, nil
}

func (u *CheckoutUsecase) freshCart(ctx context.Context) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx)
	if err != nil {
		return nil, fromRemote(err, msgCartFetchError)
	}
	if cart == nil {
		return nil, NewHTTPError(http.StatusBadRequest, msgEmptyCart)
	}
	cart.Recalculate()
	if cart.IsEmpty() {
		return nil, NewHTTPError(http.StatusBadRequest, msgEmptyCart)
	}
	return cart, nil
}

// cart_reviewとreviewでは要約用にカートを載せる（取れなければ無し）
func (u *CheckoutUsecase) view(ctx context.Context, d *checkout.Draft, cart *model.Cart) CheckoutView {
	if cart == nil && (d.Step == checkout.StepCartReview || d.Step == checkout.StepReview) {
		if c, err := u.carts.Get(ctx); err == nil && c != nil {
			c.Recalculate()
			cart = c
		} else if err != nil {
			u.logger.Warn("checkout cart summary unavailable", zap.String("draft_id", d.ID), zap.Error(err))
		}
	}
	return CheckoutView{
		Draft: d.Redacted(),
		Cart:  cart,
		Steps: checkout.Steps(d.Contact.PaymentMethod),
	}
}

func apply(d *checkout.Draft, in StepInput) {
	switch d.Step {
	case checkout.StepShipping:
		if in.Shipping != nil {
			d.Shipping = *in.Shipping
		}
	case checkout.StepBilling:
		if in.Billing != nil {
			d.Billing = *in.Billing
		}
	case checkout.StepPaymentMethod:
		if in.Contact != nil {
			notes := d.Contact.Notes
			d.Contact = *in.Contact
			d.Contact.Notes = notes
		}
	case checkout.StepPaymentDetails:
		if in.Card != nil {
			d.Card = *in.Card
		}
	case checkout.StepReview:
		if in.Notes != nil {
			d.Contact.Notes = strings.TrimSpace(*in.Notes)
		}
	}
}
