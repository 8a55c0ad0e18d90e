package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMethodPayPal         PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// 画面に出す順
var PaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPayPal,
	PaymentMethodBankTransfer,
	PaymentMethodCashOnDelivery,
}

// カード情報の入力が必要か
func (m PaymentMethod) RequiresCardDetails() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

func (m PaymentMethod) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// 決済（注文と1対1）
// method/status は旧フィールド名との互換用。
type Payment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"orderId,omitempty"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod,omitempty"`
	Method         PaymentMethod   `json:"method,omitempty"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus,omitempty"`
	Status         PaymentStatus   `json:"status,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionID  string          `json:"transactionId,omitempty"`
	CardLastFour   string          `json:"cardLastFour,omitempty"`
	CardBrand      string          `json:"cardBrand,omitempty"`
	PaymentGateway string          `json:"paymentGateway,omitempty"`
	PaymentDate    string          `json:"paymentDate,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

func (p Payment) EffectiveMethod() PaymentMethod {
	if p.PaymentMethod != "" {
		return p.PaymentMethod
	}
	return p.Method
}

func (p Payment) EffectiveStatus() PaymentStatus {
	if p.PaymentStatus != "" {
		return p.PaymentStatus
	}
	return p.Status
}

// POST /orders/{id}/pay の本体
type PaymentDetails struct {
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

type ProcessPaymentRequest struct {
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}
