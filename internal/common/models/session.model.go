package models

import (
	"delegasi-pay/internal/common/enum"
	"time"
)

// ChannelSelection is the payment channel picked on the channel screen.
type ChannelSelection struct {
	ChannelID      string `json:"channel_id"`
	BankName       string `json:"bank_name"`
	BankCode       string `json:"bank_code"`
	VirtualAccount string `json:"virtual_account"`
}

// Session is the state of one user's payment flow. At most one invoice is
// active per session.
type Session struct {
	ID             string             `json:"id"`
	State          enum.FlowStateEnum `json:"state"`
	Invoice        *Invoice           `json:"invoice,omitempty"`
	Selection      *ChannelSelection  `json:"selection,omitempty"`
	ConfirmationID string             `json:"confirmation_id,omitempty"`
	Flash          string             `json:"flash,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		State:     enum.ENTERING_REFERENCE,
		UpdatedAt: time.Now().UTC(),
	}
}

// Clear drops the invoice and everything derived from it.
func (s *Session) Clear() {
	s.State = enum.ENTERING_REFERENCE
	s.Invoice = nil
	s.Selection = nil
	s.ConfirmationID = ""
}

// TakeFlash returns the pending flash message and empties it.
func (s *Session) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}
