package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusPaid, true},
		{StatusFailed, true},
		{Status("Paid"), true},
		{Status("shipped"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestStatus_StyleTag(t *testing.T) {
	assert.Equal(t, "status-paid", StatusPaid.StyleTag())
	assert.Equal(t, "status-paid", Status("Paid").StyleTag())
	assert.Equal(t, "status-failed", StatusFailed.StyleTag())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentCashOnDelivery.IsValid())
	assert.True(t, PaymentCard.IsValid())
	assert.False(t, PaymentMethod("UPI").IsValid())
}
