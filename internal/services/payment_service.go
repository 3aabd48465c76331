package services

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/utils"
)

// PayHere status_code values.
const (
	StatusSuccess     = 2
	StatusPending     = 0
	StatusCancelled   = -1
	StatusFailed      = -2
	StatusChargedBack = -3
)

type PayHereConfig struct {
	MerchantID     string
	MerchantSecret string
	Currency       string
}

// Notification is the form-encoded body PayHere posts to notify_url.
// Fields are kept as received because the signature covers the raw text.
type Notification struct {
	MerchantID    string
	OrderID       string
	PaymentID     string
	Amount        string
	Currency      string
	StatusCode    string
	MD5Sig        string
	Method        string
	StatusMessage string
}

// ParseNotification reads a notification from decoded form values.
func ParseNotification(form url.Values) (Notification, error) {
	n := Notification{
		MerchantID:    strings.TrimSpace(form.Get("merchant_id")),
		OrderID:       strings.TrimSpace(form.Get("order_id")),
		PaymentID:     strings.TrimSpace(form.Get("payment_id")),
		Amount:        strings.TrimSpace(form.Get("payhere_amount")),
		Currency:      strings.TrimSpace(form.Get("payhere_currency")),
		StatusCode:    strings.TrimSpace(form.Get("status_code")),
		MD5Sig:        strings.TrimSpace(form.Get("md5sig")),
		Method:        strings.TrimSpace(form.Get("method")),
		StatusMessage: strings.TrimSpace(form.Get("status_message")),
	}
	required := []struct{ field, value string }{
		{"merchant_id", n.MerchantID},
		{"order_id", n.OrderID},
		{"payhere_amount", n.Amount},
		{"payhere_currency", n.Currency},
		{"status_code", n.StatusCode},
		{"md5sig", n.MD5Sig},
	}
	for _, r := range required {
		if r.value == "" {
			return n, domain.ValidationError{Field: r.field, Msg: "wajib diisi"}
		}
	}
	return n, nil
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Signature computes PayHere's md5sig:
// UPPER(MD5(merchant_id + order_id + amount + currency + status_code + UPPER(MD5(secret)))).
func Signature(merchantID, orderID, amount, currency, statusCode, secret string) string {
	return md5Upper(merchantID + orderID + amount + currency + statusCode + md5Upper(secret))
}

// Verify rejects a notification whose merchant or signature does not match.
func (c PayHereConfig) Verify(n Notification) error {
	if c.MerchantSecret == "" {
		return domain.InvalidSignatureError{Reason: "merchant secret not configured"}
	}
	if c.MerchantID != "" && subtle.ConstantTimeCompare([]byte(n.MerchantID), []byte(c.MerchantID)) != 1 {
		return domain.InvalidSignatureError{Reason: "merchant mismatch"}
	}
	expected := Signature(n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, c.MerchantSecret)
	got := strings.ToUpper(strings.TrimSpace(n.MD5Sig))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
		return domain.InvalidSignatureError{Reason: "md5sig mismatch"}
	}
	return nil
}

// MapStatus turns a status code into the booking fields it sets. Success
// confirms and marks paid; chargeback marks refunded; everything else
// leaves the booking as it is.
func MapStatus(n Notification) (models.BookingPatch, int, error) {
	code, err := strconv.Atoi(n.StatusCode)
	if err != nil {
		return models.BookingPatch{}, 0, domain.ValidationError{Field: "status_code", Msg: "bukan angka", Err: err}
	}

	var patch models.BookingPatch
	switch code {
	case StatusSuccess:
		confirmed := models.BookingConfirmed
		paid := models.PaymentPaid
		paymentID := n.PaymentID
		if paymentID == "" {
			// a paid booking must carry a payment id
			paymentID = n.OrderID
		}
		method := n.Method
		patch.Status = &confirmed
		patch.PaymentStatus = &paid
		patch.PaymentID = &paymentID
		patch.PaymentMethod = &method
	case StatusChargedBack:
		refunded := models.PaymentRefunded
		patch.PaymentStatus = &refunded
	}
	return patch, code, nil
}

// SettlementNotifier is told about bookings that just became paid.
type SettlementNotifier interface {
	BookingSettled(ctx context.Context, requestID string, b models.Booking) NotifyResult
}

// Settlement is the outcome of one processed notification.
type Settlement struct {
	Booking      models.Booking
	StatusCode   int
	Applied      bool
	Transitioned bool
	Notify       NotifyResult
}

type PaymentService struct {
	Config    PayHereConfig
	Bookings  BookingStore
	Notifier  SettlementNotifier
	RequestID string
}

// HandleNotification verifies a gateway callback and applies it. Repeated
// delivery of the same notification converges on the same state and only
// the first paid transition dispatches notifications.
func (s PaymentService) HandleNotification(ctx context.Context, n Notification) (Settlement, error) {
	if err := s.Config.Verify(n); err != nil {
		utils.LogEventf(s.RequestID, "payment", "notify", "rejected order_id=%s: %v", n.OrderID, err)
		return Settlement{}, err
	}

	patch, code, err := MapStatus(n)
	if err != nil {
		return Settlement{}, err
	}

	if patch.IsEmpty() {
		current, _, err := s.Bookings.Get(ctx, n.OrderID)
		if err != nil {
			return Settlement{}, err
		}
		utils.LogEventf(s.RequestID, "payment", "notify", "order_id=%s status_code=%d no-op (%s)", n.OrderID, code, n.StatusMessage)
		return Settlement{Booking: current, StatusCode: code}, nil
	}

	before, after, backend, err := s.Bookings.Update(ctx, n.OrderID, func(b *models.Booking) error {
		patch.Apply(b)
		return nil
	})
	if err != nil {
		utils.LogEventf(s.RequestID, "payment", "notify", "update failed order_id=%s: %v", n.OrderID, err)
		return Settlement{}, err
	}

	res := Settlement{
		Booking:      after,
		StatusCode:   code,
		Applied:      true,
		Transitioned: code == StatusSuccess && before.PaymentStatus != models.PaymentPaid,
	}
	utils.LogEventf(s.RequestID, "payment", "notify", "order_id=%s status_code=%d backend=%s payment=%s->%s",
		n.OrderID, code, backend, before.PaymentStatus, after.PaymentStatus)

	if code == StatusSuccess {
		s.checkAmount(n, after)
	}

	if res.Transitioned && s.Notifier != nil {
		res.Notify = s.Notifier.BookingSettled(ctx, s.RequestID, after)
	}
	return res, nil
}

func (s PaymentService) checkAmount(n Notification, b models.Booking) {
	if !utils.SameAmount(n.Amount, b.TotalPrice) {
		utils.LogEventf(s.RequestID, "payment", "amount", "warning order_id=%s paid=%s expected=%s", n.OrderID, n.Amount, utils.FormatMoney(b.TotalPrice))
	}
	if s.Config.Currency != "" && !strings.EqualFold(n.Currency, s.Config.Currency) {
		utils.LogEventf(s.RequestID, "payment", "amount", "warning order_id=%s currency=%s expected=%s", n.OrderID, n.Currency, s.Config.Currency)
	}
}
