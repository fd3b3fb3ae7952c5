package channel

import "errors"

var ErrUnknownChannel = errors.New("unknown payment channel")

type Service struct {
	companyCode string
	channels    []Channel
	guides      map[string][]InstructionGroup
}

type IService interface {
	List() []Channel
	Find(id string) (Channel, error)
	FindByName(name string) (Channel, bool)
	Instructions(bankName, virtualAccount string) *Instructions
}

// NewService builds the virtual account catalogue. companyCode fills the
// Mandiri multipayment step; it is left as a placeholder when empty.
func NewService(companyCode string) IService {
	return &Service{
		companyCode: companyCode,
		channels:    catalogue,
		guides:      guides,
	}
}

type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BankCode    string `json:"bank_code"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type InstructionGroup struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

type Instructions struct {
	BankName       string             `json:"bank_name"`
	VirtualAccount string             `json:"virtual_account"`
	Groups         []InstructionGroup `json:"groups"`
	Notes          []string           `json:"notes"`
}
