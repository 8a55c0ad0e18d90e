package checkout

import (
	"strings"
	"time"
	"unicode"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// カード入力（プロセス外には決済呼び出し以外で出さない）
type CardDetails struct {
	Number     string `form:"cardNumber" validate:"required,cardnumber"`
	HolderName string `form:"cardHolderName" validate:"required"`
	Expiry     string `form:"expiryDate" validate:"required,expiry"`
	CVV        string `form:"cvv" validate:"required,cvv"`
}

// 支払方法と連絡先
type Contact struct {
	PaymentMethod model.PaymentMethod `form:"paymentMethod" validate:"required,paymentmethod"`
	Email         string              `form:"customerEmail" validate:"required,email"`
	Phone         string              `form:"customerPhone"`
	Notes         string              `form:"-"`
}

// チェックアウト途中の状態（リロードで破棄される）
type Draft struct {
	ID       string
	UserID   string
	Step     Step
	Shipping model.Address
	Billing  model.Address
	Contact  Contact
	Card     CardDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewDraft(id, userID, email string, now time.Time) *Draft {
	return &Draft{
		ID:        id,
		UserID:    userID,
		Step:      StepCartReview,
		Contact:   Contact{Email: email},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// 値コピーのみ（以後の編集は連動しない）
func (d *Draft) CopyShippingToBilling() {
	d.Billing = d.Shipping
}

// 次へ。検証は呼び出し側で済ませる。
func (d *Draft) Advance(now time.Time) error {
	next, err := Transition(d.Step, ActionNext, d.Contact.PaymentMethod)
	if err != nil {
		return err
	}
	d.Step = next
	d.UpdatedAt = now
	return nil
}

// 戻る。入力値はそのまま残す。
func (d *Draft) Retreat(now time.Time) {
	prev, err := Transition(d.Step, ActionBack, d.Contact.PaymentMethod)
	if err != nil {
		return
	}
	d.Step = prev
	d.UpdatedAt = now
}

// 空白を除いたカード番号
func SanitizeCardNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// 下4桁だけ見せる
func (d *Draft) MaskedCard() string {
	num := SanitizeCardNumber(d.Card.Number)
	if len(num) < 4 {
		return ""
	}
	return "**** **** **** " + num[len(num)-4:]
}

func (d *Draft) CreateOrderRequest() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		ShippingAddress: d.Shipping.Trimmed(),
		BillingAddress:  d.Billing.Trimmed(),
		CustomerEmail:   strings.TrimSpace(d.Contact.Email),
		CustomerPhone:   strings.TrimSpace(d.Contact.Phone),
		Notes:           strings.TrimSpace(d.Contact.Notes),
		PaymentMethod:   d.Contact.PaymentMethod,
	}
}

func (d *Draft) PaymentDetails() model.PaymentDetails {
	return model.PaymentDetails{
		CardNumber:     SanitizeCardNumber(d.Card.Number),
		CardHolderName: strings.TrimSpace(d.Card.HolderName),
		ExpiryDate:     strings.TrimSpace(d.Card.Expiry),
		CVV:            strings.TrimSpace(d.Card.CVV),
	}
}

// 表示用に複製する（カード番号・CVVは落とす）
func (d *Draft) Redacted() Draft {
	out := *d
	out.Card = CardDetails{HolderName: d.Card.HolderName, Expiry: d.Card.Expiry}
	if masked := d.MaskedCard(); masked != "" {
		out.Card.Number = masked
	}
	return out
}
