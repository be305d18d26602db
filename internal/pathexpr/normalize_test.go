package pathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"name", "name"},
		{"customer.name", "customer_name"},
		{"items[2]", "items_2_"},
		{"items[2].id", "items_2__id"},
		{"a.b[0][1].c", "a_b_0__1__c"},
		{"", ""},
		{"already_flat", "already_flat"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
