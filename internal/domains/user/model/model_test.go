package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merobooking/internal/domains/user/model"
)

func TestGuestID(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "plain email",
			email: "jane@example.com",
			want:  "guest_janeexamplecom",
		},
		{
			name:  "dots and plus signs are stripped",
			email: "jane.doe+hotel@example.com",
			want:  "guest_janedoehotelexamplecom",
		},
		{
			name:  "case insensitive",
			email: "Jane.Doe@Example.COM",
			want:  "guest_janedoeexamplecom",
		},
		{
			name:  "digits survive",
			email: "guest42@example.com",
			want:  "guest_guest42examplecom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.GuestID(tt.email))
		})
	}
}

func TestGuestID_Deterministic(t *testing.T) {
	assert.Equal(t, model.GuestID("jane@example.com"), model.GuestID("JANE@example.com"))
}
