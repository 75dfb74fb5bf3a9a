package shared_test

import (
	"context"
	"errors"
	"reflect"
	"roomly/shared"
	cacheMocks "roomly/shared/cache/mocks"
	"roomly/shared/constant"
	"roomly/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "valid t string",
			input:    "t",
			expected: boolPtr(true),
		},
		{
			name:     "valid f string",
			input:    "f",
			expected: boolPtr(false),
		},
		{
			name:     "valid T string",
			input:    "T",
			expected: boolPtr(true),
		},
		{
			name:     "valid F string",
			input:    "F",
			expected: boolPtr(false),
		},
		{
			name:     "valid TRUE string",
			input:    "TRUE",
			expected: boolPtr(true),
		},
		{
			name:     "valid FALSE string",
			input:    "FALSE",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
		{
			name:     "random string returns nil",
			input:    "random",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "single item",
			total:    1,
			limit:    10,
			expected: 1,
		},
		{
			name:     "limit equals total",
			total:    10,
			limit:    10,
			expected: 1,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
		{
			name:     "large numbers",
			total:    1000000,
			limit:    7,
			expected: 142858,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type TestStruct struct {
		Name       string `db:"name"`
		Email      string `db:"email"`
		EmptyField string `db:"empty_field"`
		NoDBTag    string
		NoTagField string `db:""`
	}

	tests := []struct {
		name     string
		data     interface{}
		expected map[string]any
	}{
		{
			name: "struct with populated fields",
			data: TestStruct{
				Name:       "John Doe",
				Email:      "john@example.com",
				NoDBTag:    "ignored",
				NoTagField: "ignored",
			},
			expected: map[string]any{
				"name":  "John Doe",
				"email": "john@example.com",
			},
		},
		{
			name:     "struct with all zero values",
			data:     TestStruct{},
			expected: map[string]any{},
		},
		{
			name:     "struct with partial fields",
			data:     TestStruct{Name: "Jane Doe"},
			expected: map[string]any{"name": "Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data)

			if _, ok := result[constant.FieldUpdatedAt].(time.Time); !ok {
				t.Error("expected updated_at to be a time.Time")
			}

			for key, expectedValue := range tt.expected {
				if actualValue, exists := result[key]; !exists {
					t.Errorf("expected field %s to exist", key)
				} else if !reflect.DeepEqual(actualValue, expectedValue) {
					t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
				}
			}

			for key := range result {
				if key == constant.FieldUpdatedAt {
					continue
				}

				if _, expected := tt.expected[key]; !expected {
					t.Errorf("unexpected field %s in result", key)
				}
			}
		})
	}
}

func TestTransformFieldsWithPointers(t *testing.T) {
	type TestStructWithPointers struct {
		Name  *string `db:"name"`
		Count *int    `db:"count"`
	}

	name := "John"
	count := 0

	result := shared.TransformFields(TestStructWithPointers{Name: &name, Count: &count})

	assert.Equal(t, &name, result["name"])
	assert.Equal(t, &count, result["count"])
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID(42, "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    int64(42),
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
		},
	}, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, int64(42), args["id"])
}

func TestFilterActiveByID(t *testing.T) {
	where, args := shared.FilterActiveByID(7, "id", "rooms").GetWhereClause()

	assert.Equal(t, "(rooms.id = :id AND rooms.is_deleted = :rooms_is_deleted)", where)
	assert.Equal(t, int64(7), args["id"])
	assert.Equal(t, false, args["rooms_is_deleted"])
}

func TestConvertStringToID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid", input: "12", want: 12},
		{name: "trims spaces", input: " 3 ", want: 3},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-4", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shared.ConvertStringToID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:12", shared.BuildCacheKey("room:get", "12"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "location_id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}
	params := dto.QueryParams{Page: 1, Limit: 10}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "room:gets:"))

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
}

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, int64(7))
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

	userID, role := shared.ActorFromContext(ctx)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, constant.RoleUser, role)

	userID, role = shared.ActorFromContext(context.Background())
	assert.Zero(t, userID)
	assert.Empty(t, role)
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, shared.StringOrNil("   "))

	value := shared.StringOrNil(" late arrival ")
	if assert.NotNil(t, value) {
		assert.Equal(t, "late arrival", *value)
	}
}

// Helper functions for creating pointers
func boolPtr(b bool) *bool {
	return &b
}

