package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"merobooking/shared/validator"
)

type createBookingPayload struct {
	RoomID        string `json:"room_id"        validate:"required"`
	CheckIn       string `json:"check_in"       validate:"required,datetime=2006-01-02"`
	CheckOut      string `json:"check_out"      validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CASH ESEWA KHALTI"`
}

func TestValidateDecodesAndValidates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"room_id":"101","check_in":"2025-03-01","check_out":"2025-03-04","payment_method":"CASH"}`,
			wantErr: false,
		},
		{
			name:    "missing room id",
			body:    `{"check_in":"2025-03-01","check_out":"2025-03-04","payment_method":"CASH"}`,
			wantErr: true,
		},
		{
			name:    "malformed date",
			body:    `{"room_id":"101","check_in":"03/01/2025","check_out":"2025-03-04","payment_method":"CASH"}`,
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			body:    `{"room_id":"101","check_in":"2025-03-01","check_out":"2025-03-04","payment_method":"PAYPAL"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `{"room_id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createBookingPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(5, "min=1,max=5"))
	assert.Error(t, validator.ValidateVar(6, "min=1,max=5"))
}
