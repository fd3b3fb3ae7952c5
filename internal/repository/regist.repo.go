package repository

import (
	confirmationRepo "delegasi-pay/internal/repository/confirmation"
	sessionRepo "delegasi-pay/internal/repository/session"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Session      sessionRepo.IRepository
	Confirmation confirmationRepo.IRepository
}
