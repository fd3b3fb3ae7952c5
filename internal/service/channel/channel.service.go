package channel

import (
	"strings"

	"github.com/samber/lo"
)

func (s *Service) List() []Channel {
	return append([]Channel(nil), s.channels...)
}

func (s *Service) Find(id string) (Channel, error) {
	ch, ok := lo.Find(s.channels, func(c Channel) bool {
		return c.ID == id
	})
	if !ok {
		return Channel{}, ErrUnknownChannel
	}
	return ch, nil
}

func (s *Service) FindByName(name string) (Channel, bool) {
	return lo.Find(s.channels, func(c Channel) bool {
		return strings.EqualFold(c.Name, name)
	})
}

// Instructions renders the step groups for bankName. A bank without a guide
// yields no groups; the notes are always present.
func (s *Service) Instructions(bankName, virtualAccount string) *Instructions {
	groups := lo.Map(s.guides[bankName], func(g InstructionGroup, _ int) InstructionGroup {
		return InstructionGroup{
			Title: g.Title,
			Steps: lo.Map(g.Steps, func(step string, _ int) string {
				return s.fill(step, virtualAccount)
			}),
		}
	})

	return &Instructions{
		BankName:       bankName,
		VirtualAccount: virtualAccount,
		Groups:         groups,
		Notes:          append([]string(nil), notes...),
	}
}

func (s *Service) fill(step, virtualAccount string) string {
	step = strings.ReplaceAll(step, placeholderVA, virtualAccount)
	if s.companyCode != "" {
		step = strings.ReplaceAll(step, placeholderCompanyCode, s.companyCode)
	}
	return step
}
