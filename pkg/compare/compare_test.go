package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal strings", a: "go1.x", b: "go1.x", want: true},
		{name: "different strings", a: "a", b: "b", want: false},
		{name: "equal numbers", a: float64(256), b: float64(256), want: true},
		{name: "no numeric coercion", a: 1, b: "1", want: false},
		{name: "no cross-type numeric equality", a: int32(256), b: float64(256), want: false},
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil vs value", a: nil, b: "", want: false},
		{name: "bools", a: true, b: true, want: true},
		{name: "bool vs string", a: true, b: "true", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}

func TestEqualLists(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal", a: []any{"s1", "s2"}, b: []any{"s1", "s2"}, want: true},
		{name: "length differs", a: []any{"g1"}, b: []any{"g1", "g2"}, want: false},
		{name: "order matters", a: []any{"s1", "s2"}, b: []any{"s2", "s1"}, want: false},
		{name: "empty lists", a: []any{}, b: []any{}, want: true},
		{name: "nested", a: []any{[]any{1.0}}, b: []any{[]any{1.0}}, want: true},
		{
			name: "list never equals index-keyed map",
			a:    []any{1.0, 2.0},
			b:    map[string]any{"0": 1.0, "1": 2.0},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}

func TestEqualMaps(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{
			name: "equal regardless of construction order",
			a:    map[string]any{"ENV": "dev", "REGION": "us-east-1"},
			b:    map[string]any{"REGION": "us-east-1", "ENV": "dev"},
			want: true,
		},
		{
			name: "value differs",
			a:    map[string]any{"ENV": "dev"},
			b:    map[string]any{"ENV": "prod"},
			want: false,
		},
		{
			name: "key set size differs",
			a:    map[string]any{"SubnetIds": []any{"s1"}},
			b:    map[string]any{"SubnetIds": []any{"s1"}, "VpcId": "vpc-1"},
			want: false,
		},
		{
			name: "nested network config",
			a:    map[string]any{"SubnetIds": []any{"s1"}, "SecurityGroupIds": []any{"g1"}},
			b:    map[string]any{"SubnetIds": []any{"s1"}, "SecurityGroupIds": []any{"g1", "g2"}},
			want: false,
		},
		{name: "map vs scalar", a: map[string]any{"a": 1}, b: "a", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}

func TestEqualIsSymmetric(t *testing.T) {
	pairs := [][2]any{
		{[]any{1.0, 2.0}, map[string]any{"0": 1.0, "1": 2.0}},
		{map[string]any{"a": "x"}, map[string]any{"a": "x", "b": "y"}},
		{"1", 1},
		{nil, []any{}},
		{[]any{"a"}, []any{"a"}},
	}

	for _, p := range pairs {
		assert.Equal(t, Equal(p[0], p[1]), Equal(p[1], p[0]), "Equal(%#v, %#v) not symmetric", p[0], p[1])
	}
}
