package flow

import (
	"context"
	"delegasi-pay/internal/common/enum"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/logger"
	"delegasi-pay/internal/service/channel"
	"delegasi-pay/internal/service/confirmation"
	"delegasi-pay/internal/service/invoice"
	"errors"
	"fmt"
)

// run loads the session under its try-lock, applies fn and saves the result
// when fn succeeds or asks for it.
func (c *Controller) run(ctx context.Context, sessionID string, fn func(s *models.Session) (saveOnError bool, err error)) (*models.Session, error) {
	unlock, err := c.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	saveOnError, err := fn(s)
	if err != nil && !saveOnError {
		return s, err
	}
	if serr := c.sessions.Save(ctx, s); serr != nil {
		return s, fmt.Errorf("failed to save session: %w", serr)
	}
	return s, err
}

func (c *Controller) View(ctx context.Context, sessionID string) (*View, error) {
	unlock, err := c.acquire(ctx, sessionID)
	if errors.Is(err, ErrOperationInProgress) {
		s, err := c.sessions.Load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		v := c.render(s)
		v.Busy = true
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.Flash != "" {
		flash := s.TakeFlash()
		if err := c.sessions.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		v := c.render(s)
		v.Flash = flash
		return v, nil
	}

	return c.render(s), nil
}

func (c *Controller) SubmitReference(ctx context.Context, sessionID, reference string) (*View, error) {
	var fetchErr error

	s, err := c.run(ctx, sessionID, func(s *models.Session) (bool, error) {
		if s.State != enum.ENTERING_REFERENCE {
			return false, ErrInvalidTransition
		}

		inv, err := c.invoices.GetInvoice(ctx, reference)
		if err != nil {
			fetchErr = err
			s.Clear()
			return true, err
		}

		s.Clear()
		s.Invoice = inv
		s.State = enum.VIEWING_INVOICE
		return false, nil
	})
	if s == nil {
		return nil, err
	}

	v := c.render(s)
	if fetchErr != nil {
		v.Error = invoice.UserMessage(fetchErr)
	}
	return v, err
}

func (c *Controller) Back(ctx context.Context, sessionID string) (*View, error) {
	s, err := c.run(ctx, sessionID, func(s *models.Session) (bool, error) {
		switch s.State {
		case enum.VIEWING_INVOICE:
			s.Clear()
		case enum.SELECTING_CHANNEL, enum.VIEWING_INSTRUCTIONS:
			if s.Invoice == nil {
				s.Clear()
				return false, nil
			}
			s.State = enum.VIEWING_INVOICE
			s.Selection = nil
			s.ConfirmationID = ""
		default:
			return false, ErrInvalidTransition
		}
		return false, nil
	})
	return c.result(s, err)
}

func (c *Controller) PayNow(ctx context.Context, sessionID string) (*View, error) {
	s, err := c.run(ctx, sessionID, func(s *models.Session) (bool, error) {
		if s.State != enum.VIEWING_INVOICE {
			return false, ErrInvalidTransition
		}
		if s.Invoice == nil {
			return false, ErrNoActiveInvoice
		}
		s.State = enum.SELECTING_CHANNEL
		return false, nil
	})
	return c.result(s, err)
}

func (c *Controller) SelectChannel(ctx context.Context, sessionID, channelID string) (*View, error) {
	s, err := c.run(ctx, sessionID, func(s *models.Session) (bool, error) {
		if s.State != enum.SELECTING_CHANNEL {
			return false, ErrInvalidTransition
		}
		if s.Invoice == nil {
			return false, ErrNoActiveInvoice
		}

		ch, err := c.channels.Find(channelID)
		if err != nil {
			return false, err
		}

		s.Selection = &models.ChannelSelection{
			ChannelID:      ch.ID,
			BankName:       ch.Name,
			BankCode:       ch.BankCode,
			VirtualAccount: c.virtualAccount,
		}
		s.ConfirmationID = ""
		s.State = enum.VIEWING_INSTRUCTIONS
		return false, nil
	})
	return c.result(s, err)
}

// ConfirmPayment reports the active invoice as paid. The confirmation id is
// stored before the webhook call so a retry after failure reuses it.
func (c *Controller) ConfirmPayment(ctx context.Context, sessionID string) (*View, error) {
	unlock, err := c.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Invoice == nil {
		return c.render(s), ErrNoActiveInvoice
	}
	if s.State != enum.VIEWING_INSTRUCTIONS {
		return c.render(s), ErrInvalidTransition
	}

	if s.ConfirmationID == "" {
		s.ConfirmationID = c.newID()
		if err := c.sessions.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	inv, selection := s.Invoice, s.Selection
	if _, err := c.confirmations.Confirm(ctx, inv, selection, s.ConfirmationID); err != nil {
		v := c.render(s)
		v.Error = confirmation.MessageFailed
		return v, err
	}

	s.Clear()
	s.Flash = confirmation.MessageConfirmed
	if err := c.sessions.Save(ctx, s); err != nil {
		logger.Error.Printf("Confirmed invoice %s but failed to clear session %s: %v", inv.ID, sessionID, err)
	}

	return &View{
		SessionID: sessionID,
		State:     enum.CONFIRMED,
		Invoice:   inv,
		Selection: selection,
		Amount:    inv.TotalAmount,
		Flash:     confirmation.MessageConfirmed,
	}, nil
}

func (c *Controller) Reset(ctx context.Context, sessionID string) (*View, error) {
	unlock, err := c.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := c.sessions.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	return c.render(models.NewSession(sessionID)), nil
}

// DirectInstructions serves the instructions page opened by link. The
// session's own selection wins when it is already on that screen; otherwise
// the page is informational and cannot confirm.
func (c *Controller) DirectInstructions(ctx context.Context, sessionID, bankName, virtualAccount string, amount int64) (*View, error) {
	s, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.State == enum.VIEWING_INSTRUCTIONS && s.Invoice != nil {
		return c.render(s), nil
	}

	if virtualAccount == "" {
		virtualAccount = c.virtualAccount
	}
	if ch, ok := c.channels.FindByName(bankName); ok {
		bankName = ch.Name
	}

	return &View{
		SessionID:    sessionID,
		State:        enum.VIEWING_INSTRUCTIONS,
		Selection:    &models.ChannelSelection{BankName: bankName, VirtualAccount: virtualAccount},
		Instructions: c.channels.Instructions(bankName, virtualAccount),
		Amount:       amount,
	}, nil
}

func (c *Controller) Channels() []channel.Channel {
	return c.channels.List()
}

func (c *Controller) result(s *models.Session, err error) (*View, error) {
	if s == nil {
		return nil, err
	}
	return c.render(s), err
}

func (c *Controller) render(s *models.Session) *View {
	v := &View{
		SessionID: s.ID,
		State:     s.State,
		Invoice:   s.Invoice,
		Selection: s.Selection,
	}
	if s.Invoice != nil {
		v.Amount = s.Invoice.TotalAmount
	}

	switch s.State {
	case enum.SELECTING_CHANNEL:
		v.Channels = c.channels.List()
	case enum.VIEWING_INSTRUCTIONS:
		if s.Selection != nil {
			v.Instructions = c.channels.Instructions(s.Selection.BankName, s.Selection.VirtualAccount)
		}
		v.CanConfirm = s.Invoice != nil
	}
	return v
}
