package domain

const (
	RoleAdmin    = "ADMIN"
	RoleBusiness = "BUSINESS"
)

const (
	AccountEnabled  = "ENABLED"
	AccountDisabled = "DISABLED"
)

const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderCompleted  = "COMPLETED"
	OrderCancelled  = "CANCELLED"
)

const (
	ChannelWhatsApp  = "WHATSAPP"
	ChannelMessenger = "MESSENGER"
	ChannelPhone     = "PHONE"
)

// Plan tiers shipped with the seed data; admins can define more.
const (
	PlanLite   = "Lite"
	PlanSilver = "Silver"
	PlanGold   = "Gold"
	PlanElite  = "Elite"
)

// orderTransitions is the closed status machine: PENDING and PROCESSING
// branch, COMPLETED and CANCELLED are terminal.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status admits no further transitions.
func IsTerminalStatus(s string) bool {
	return s == OrderCompleted || s == OrderCancelled
}

func ValidChannel(c string) bool {
	return c == ChannelWhatsApp || c == ChannelMessenger || c == ChannelPhone
}

func ValidStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
