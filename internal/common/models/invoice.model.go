package models

// Party is the merchant or buyer on an invoice.
type Party struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type InvoiceItem struct {
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// Invoice is owned by the payment provider; this service only reads it.
// Amounts are whole rupiah.
type Invoice struct {
	ID             string        `json:"id"`
	Date           string        `json:"date"`
	Merchant       Party         `json:"merchant"`
	Buyer          Party         `json:"buyer"`
	Items          []InvoiceItem `json:"items"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      *string       `json:"updated_at"`
	Status         string        `json:"status"`
	RoundedAmount  int64         `json:"rounded_amount"`
	DiscountAmount int64         `json:"discount_amount"`
	TotalFee       int64         `json:"total_fee"`
	Amount         int64         `json:"amount"`
	TotalAmount    int64         `json:"total_amount"`
	UniqueCode     string        `json:"unique_code"`
}

// ExpectedTotal is amount - discount + fee + rounding.
func (i *Invoice) ExpectedTotal() int64 {
	return i.Amount - i.DiscountAmount + i.TotalFee + i.RoundedAmount
}

// Balanced reports whether total_amount matches its components. The provider
// owns the invoice, so an unbalanced one is logged, not rejected.
func (i *Invoice) Balanced() bool {
	return i.TotalAmount == i.ExpectedTotal()
}
