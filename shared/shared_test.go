package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merobooking/shared"
	"merobooking/shared/constant"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *bool
	}{
		{name: "true", value: "true", want: ptr(true)},
		{name: "false", value: "false", want: ptr(false)},
		{name: "empty", value: "", want: nil},
		{name: "garbage", value: "maybe", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.value)

			if tt.want == nil {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt("42")

	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = shared.ConvertStringToInt("forty-two")

	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "no data", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 20, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get", shared.BuildCacheKey("booking:get"))
	assert.Equal(t, "booking:get:BK-AAAAA", shared.BuildCacheKey("booking:get", "BK-AAAAA"))
	assert.Equal(t, "limiter:1.2.3.4:agent", shared.BuildCacheKey("limiter", "1.2.3.4", "agent"))
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name     string `db:"name"`
		Capacity *int   `db:"capacity"`
		Ignored  string
	}

	capacity := 4

	fields := shared.TransformFields(update{Name: "Suite", Capacity: &capacity, Ignored: "x"}, "admin1")

	assert.Equal(t, "Suite", fields["name"])
	assert.Equal(t, 4, fields["capacity"])
	assert.Equal(t, "admin1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "Ignored")
}

func TestTransformFields_SkipsZeroValues(t *testing.T) {
	type update struct {
		Name string `db:"name"`
		Icon string `db:"icon"`
	}

	fields := shared.TransformFields(update{Icon: "Star"}, "admin1")

	assert.NotContains(t, fields, "name")
	assert.Equal(t, "Star", fields["icon"])
}

func ptr[T any](v T) *T {
	return &v
}
