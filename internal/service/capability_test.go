package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotaClosesGateRegardlessOfFlag(t *testing.T) {
	caps := Capabilities{CanAddOrder: true, MaxOrderNumber: 10}

	assert.True(t, CanAddOrder(caps, 0))
	assert.True(t, CanAddOrder(caps, 9))
	assert.False(t, CanAddOrder(caps, 10))
	assert.False(t, CanAddOrder(caps, 11))
}

func TestFlagOffClosesGateBelowQuota(t *testing.T) {
	caps := Capabilities{CanAddOrder: false, MaxOrderNumber: 10}
	assert.False(t, CanAddOrder(caps, 0))

	caps = Capabilities{CanAddCustomer: false, MaxCustomerNumber: 10}
	assert.False(t, CanAddCustomer(caps, 0))

	caps = Capabilities{CanAddProducts: false, MaxProductNumber: 10}
	assert.False(t, CanAddProduct(caps, 0))
}

func TestCustomerAndProductGates(t *testing.T) {
	caps := Capabilities{
		CanAddCustomer: true, MaxCustomerNumber: 3,
		CanAddProducts: true, MaxProductNumber: 2,
	}
	assert.True(t, CanAddCustomer(caps, 2))
	assert.False(t, CanAddCustomer(caps, 3))
	assert.True(t, CanAddProduct(caps, 1))
	assert.False(t, CanAddProduct(caps, 2))
}

func TestRestrictedCapabilitiesAllowNothing(t *testing.T) {
	caps := RestrictedCapabilities()
	assert.False(t, CanAddOrder(caps, 0))
	assert.False(t, CanAddCustomer(caps, 0))
	assert.False(t, CanAddProduct(caps, 0))
	assert.False(t, CanImportExport(caps))
}
