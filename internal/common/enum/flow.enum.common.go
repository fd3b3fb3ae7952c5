package enum

// FlowStateEnum is the screen a payment session is on.
type FlowStateEnum string

const (
	ENTERING_REFERENCE   FlowStateEnum = "ENTERING_REFERENCE"
	VIEWING_INVOICE      FlowStateEnum = "VIEWING_INVOICE"
	SELECTING_CHANNEL    FlowStateEnum = "SELECTING_CHANNEL"
	VIEWING_INSTRUCTIONS FlowStateEnum = "VIEWING_INSTRUCTIONS"
	CONFIRMED            FlowStateEnum = "CONFIRMED"
)

func (e FlowStateEnum) ToString() string {
	switch e {
	case ENTERING_REFERENCE, VIEWING_INVOICE, SELECTING_CHANNEL, VIEWING_INSTRUCTIONS, CONFIRMED:
		return string(e)
	}
	return ""
}

func (e FlowStateEnum) IsValid() bool {
	return e.ToString() != ""
}

/*----------- ProviderEnum -----------*/

type ProviderEnum string

const (
	DELEGASI ProviderEnum = "delegasi"
)

func (e ProviderEnum) ToString() string {
	switch e {
	case DELEGASI:
		return "delegasi"
	}
	return ""
}

func (e ProviderEnum) DisplayName() string {
	switch e {
	case DELEGASI:
		return "Delegasi"
	}
	return ""
}

func (e ProviderEnum) IsValid() bool {
	switch e {
	case DELEGASI:
		return true
	}
	return false
}

// Providers lists the selectable invoice providers in display order.
func Providers() []ProviderEnum {
	return []ProviderEnum{DELEGASI}
}
