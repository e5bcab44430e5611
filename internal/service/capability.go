package service

// Capabilities is the effective capability/quota snapshot a tenant operates
// under. It is a copy taken at plan-assignment time, never a live reference
// to the plan template.
type Capabilities struct {
	CanAddOrder           bool `json:"can_add_order"`
	CanAddCustomer        bool `json:"can_add_customer"`
	CanAddProducts        bool `json:"can_add_products"`
	HasExportImportOption bool `json:"has_export_import_option"`
	MaxOrderNumber        int  `json:"max_order_number"`
	MaxCustomerNumber     int  `json:"max_customer_number"`
	MaxProductNumber      int  `json:"max_product_number"`
}

// RestrictedCapabilities is what an onboarding-required profile operates
// under: nothing allowed.
func RestrictedCapabilities() Capabilities {
	return Capabilities{}
}

// Gate decisions are pure functions over the snapshot and live counts,
// recomputed on every request.

func CanAddOrder(caps Capabilities, currentOrders int64) bool {
	return caps.CanAddOrder && currentOrders < int64(caps.MaxOrderNumber)
}

func CanAddCustomer(caps Capabilities, currentCustomers int64) bool {
	return caps.CanAddCustomer && currentCustomers < int64(caps.MaxCustomerNumber)
}

func CanAddProduct(caps Capabilities, currentProducts int64) bool {
	return caps.CanAddProducts && currentProducts < int64(caps.MaxProductNumber)
}

func CanImportExport(caps Capabilities) bool {
	return caps.HasExportImportOption
}
