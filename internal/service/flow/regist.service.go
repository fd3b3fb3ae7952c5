package flow

import (
	"context"
	"delegasi-pay/internal/common/enum"
	"delegasi-pay/internal/common/models"
	sessionRepo "delegasi-pay/internal/repository/session"
	"delegasi-pay/internal/service/channel"
	"delegasi-pay/internal/service/confirmation"
	"delegasi-pay/internal/service/invoice"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errors.New("action not allowed in the current flow state")
	ErrOperationInProgress = errors.New("another action is in progress for this session")
	ErrNoActiveInvoice     = errors.New("no active invoice")
	ErrUnknownChannel      = channel.ErrUnknownChannel
)

// View is what a screen renders for a session after an action.
type View struct {
	SessionID    string                   `json:"session_id"`
	State        enum.FlowStateEnum       `json:"state"`
	Invoice      *models.Invoice          `json:"invoice,omitempty"`
	Selection    *models.ChannelSelection `json:"selection,omitempty"`
	Channels     []channel.Channel        `json:"channels,omitempty"`
	Instructions *channel.Instructions    `json:"instructions,omitempty"`
	Amount       int64                    `json:"amount"`
	Error        string                   `json:"error,omitempty"`
	Flash        string                   `json:"flash,omitempty"`
	CanConfirm   bool                     `json:"can_confirm"`
	Busy         bool                     `json:"busy,omitempty"`
}

type Controller struct {
	sessions      sessionRepo.IRepository
	invoices      invoice.IService
	confirmations confirmation.IService
	channels      channel.IService

	virtualAccount string
	locks          *keyedLock
	shared         Locker
	newID          func() string
}

type IController interface {
	View(ctx context.Context, sessionID string) (*View, error)
	SubmitReference(ctx context.Context, sessionID, reference string) (*View, error)
	Back(ctx context.Context, sessionID string) (*View, error)
	PayNow(ctx context.Context, sessionID string) (*View, error)
	SelectChannel(ctx context.Context, sessionID, channelID string) (*View, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*View, error)
	Reset(ctx context.Context, sessionID string) (*View, error)
	DirectInstructions(ctx context.Context, sessionID, bankName, virtualAccount string, amount int64) (*View, error)
	Channels() []channel.Channel
}

// NewController wires the flow. virtualAccount is the number shown on the
// instructions screen for every channel.
func NewController(
	sessions sessionRepo.IRepository,
	invoices invoice.IService,
	confirmations confirmation.IService,
	channels channel.IService,
	virtualAccount string,
) *Controller {
	return &Controller{
		sessions:       sessions,
		invoices:       invoices,
		confirmations:  confirmations,
		channels:       channels,
		virtualAccount: virtualAccount,
		locks:          newKeyedLock(),
		newID:          uuid.NewString,
	}
}

// WithSharedLocker adds a cross-process lock taken after the in-process one.
// Needed whenever sessions live in a store other replicas also serve.
func (c *Controller) WithSharedLocker(l Locker) *Controller {
	c.shared = l
	return c
}
