package model

import "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"

// VoucherType classifies a voucher.
type VoucherType string

const (
	VoucherSales    VoucherType = "sales"
	VoucherPurchase VoucherType = "purchase"
	VoucherPayment  VoucherType = "payment"
	VoucherReceipt  VoucherType = "receipt"
	VoucherJournal  VoucherType = "journal"
)

// Voucher is a sales/purchase/payment/receipt/journal document.
type Voucher struct {
	ID        ID           `json:"id"                  form:"-"`
	Number    string       `json:"voucher_no"          form:"voucher_no"   validate:"omitempty,max=64"`
	Type      VoucherType  `json:"voucher_type"        form:"voucher_type" validate:"required,oneof=sales purchase payment receipt journal"`
	Date      string       `json:"date"                form:"date"         validate:"required,datetime=2006-01-02"`
	PartyName string       `json:"party_name"          form:"party_name"   validate:"omitempty,max=255"`
	Amount    money.Amount `json:"amount"              form:"amount"       validate:"required"`
	Narration string       `json:"narration,omitempty" form:"narration"    validate:"omitempty,max=2000"`
}

// EntityID implements Entity.
func (v Voucher) EntityID() ID { return v.ID }
