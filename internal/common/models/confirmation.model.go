package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONB is a custom type for GORM to handle JSONB columns
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("null")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(v)
	case string:
		*j = JSONB(v)
	default:
		return errors.New("unsupported type for JSONB")
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSONB: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// PaymentConfirmation is the audit record of a webhook the provider accepted.
type PaymentConfirmation struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ReferenceID    string    `json:"reference_id" gorm:"type:varchar(100);index;not null"`
	Channel        string    `json:"channel" gorm:"type:varchar(50)"`
	VirtualAccount string    `json:"virtual_account" gorm:"type:varchar(50)"`
	Amount         int64     `json:"amount" gorm:"not null"`
	FeeAmount      int64     `json:"fee_amount"`
	DiscountAmount int64     `json:"discount_amount"`
	TotalAmount    int64     `json:"total_amount" gorm:"not null"`
	Status         string    `json:"status" gorm:"type:varchar(20);not null;index"`
	Payload        JSONB     `json:"payload" gorm:"type:json"`
	Response       JSONB     `json:"response" gorm:"type:json"`
	ConfirmedAt    time.Time `json:"confirmed_at" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PaymentConfirmation) TableName() string {
	return "payment_confirmations"
}
