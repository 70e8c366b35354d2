package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merobooking/shared/dto"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "room_id",
				Value:    "101",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "101"},
		},
		{
			name: "strict less for overlap lower bound",
			filter: dto.Filter{
				Field:    "check_in",
				ArgName:  "query_check_out",
				Value:    "2025-01-15",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			wantWhere: "bookings.check_in < :query_check_out",
			wantArgs:  map[string]any{"query_check_out": "2025-01-15"},
		},
		{
			name: "strict greater for overlap upper bound",
			filter: dto.Filter{
				Field:    "check_out",
				ArgName:  "query_check_in",
				Value:    "2025-01-10",
				Operator: dto.FilterOperatorGreater,
				Table:    "bookings",
			},
			wantWhere: "bookings.check_out > :query_check_in",
			wantArgs:  map[string]any{"query_check_in": "2025-01-10"},
		},
		{
			name: "not_in with slice expands named args",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"CANCELLED", "REJECTED"},
				Operator: dto.FilterOperatorNotIn,
				Table:    "bookings",
			},
			wantWhere: "bookings.status NOT IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "CANCELLED", "status_1": "REJECTED"},
		},
		{
			name: "unknown operator produces empty clause",
			filter: dto.Filter{
				Field:    "status",
				Value:    "PENDING",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "101", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.Filter{Field: "status", Value: []string{"CANCELLED", "REJECTED"}, Operator: dto.FilterOperatorNotIn, Table: "bookings"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND bookings.status NOT IN (:status_0, :status_1) )", where)
	assert.Len(t, args, 3)
}

func TestFilterGroupDefaultsToAnd(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "user_id", Value: "guest_a", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "status", Value: "PENDING", Operator: dto.FilterOperatorEq},
		},
	}

	where, _ := group.GetWhereClause()

	assert.Contains(t, where, " AND ")
}

func TestEmptyFilterGroup(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
