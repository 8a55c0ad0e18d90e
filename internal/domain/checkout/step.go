package checkout

import (
	"errors"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// ウィザードのステップ
type Step string

const (
	StepCartReview     Step = "cart_review"
	StepShipping       Step = "shipping"
	StepBilling        Step = "billing"
	StepPaymentMethod  Step = "payment_method"
	StepPaymentDetails Step = "payment_details"
	StepReview         Step = "review"
)

type Action string

const (
	ActionNext Action = "next"
	ActionBack Action = "back"
)

var ErrNoTransition = errors.New("no transition")

// 画面の進捗表示用（payment_detailsはカードのときだけ）
func Steps(method model.PaymentMethod) []Step {
	if method.RequiresCardDetails() {
		return []Step{StepCartReview, StepShipping, StepBilling, StepPaymentMethod, StepPaymentDetails, StepReview}
	}
	return []Step{StepCartReview, StepShipping, StepBilling, StepPaymentMethod, StepReview}
}

func (s Step) Valid() bool {
	switch s {
	case StepCartReview, StepShipping, StepBilling, StepPaymentMethod, StepPaymentDetails, StepReview:
		return true
	}
	return false
}

func (s Step) Label() string {
	switch s {
	case StepCartReview:
		return "Cart Review"
	case StepShipping:
		return "Shipping Address"
	case StepBilling:
		return "Billing Address"
	case StepPaymentMethod:
		return "Payment Method"
	case StepPaymentDetails:
		return "Payment Details"
	case StepReview:
		return "Review Order"
	}
	return string(s)
}

type transitionKey struct {
	from   Step
	action Action
}

// 遷移表。支払方法で分岐するものはfuncで決める。
var transitions = map[transitionKey]func(model.PaymentMethod) Step{
	{StepCartReview, ActionNext}:     fixed(StepShipping),
	{StepShipping, ActionNext}:       fixed(StepBilling),
	{StepBilling, ActionNext}:        fixed(StepPaymentMethod),
	{StepPaymentMethod, ActionNext}:  afterPaymentMethod,
	{StepPaymentDetails, ActionNext}: fixed(StepReview),

	{StepCartReview, ActionBack}:     fixed(StepCartReview),
	{StepShipping, ActionBack}:       fixed(StepCartReview),
	{StepBilling, ActionBack}:        fixed(StepShipping),
	{StepPaymentMethod, ActionBack}:  fixed(StepBilling),
	{StepPaymentDetails, ActionBack}: fixed(StepPaymentMethod),
	{StepReview, ActionBack}:         beforeReview,
}

func fixed(s Step) func(model.PaymentMethod) Step {
	return func(model.PaymentMethod) Step { return s }
}

func afterPaymentMethod(m model.PaymentMethod) Step {
	if m.RequiresCardDetails() {
		return StepPaymentDetails
	}
	return StepReview
}

func beforeReview(m model.PaymentMethod) Step {
	if m.RequiresCardDetails() {
		return StepPaymentDetails
	}
	return StepPaymentMethod
}

// 次のステップを返す（reviewのnextは注文確定なので遷移なし）
func Transition(from Step, action Action, method model.PaymentMethod) (Step, error) {
	fn, ok := transitions[transitionKey{from: from, action: action}]
	if !ok {
		return from, ErrNoTransition
	}
	return fn(method), nil
}
