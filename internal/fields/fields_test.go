package fields

import (
	"reflect"
	"testing"
)

func TestStructFields(t *testing.T) {
	type Embedded struct{ A, B int }
	tests := map[string]struct {
		value any
		want  int
	}{
		"Simple": {struct{ A, B int }{}, 2},
		"Ignored": {struct {
			A int
			B int `der:"-"`
			C string
		}{}, 2},
		"Embedded": {
			struct {
				X string
				Embedded
			}{}, 3,
		},
		"NonExported": {
			struct {
				a int
				B int
			}{}, 1,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := 0
			for range StructFields(reflect.ValueOf(tt.value)) {
				got++
			}
			if got != tt.want {
				t.Errorf("StructFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStructFieldsYieldsRawTag(t *testing.T) {
	type T struct {
		A int `der:"tag:5,explicit"`
		B int
	}
	var got []string
	for _, tag := range StructFields(reflect.ValueOf(T{})) {
		got = append(got, tag)
	}
	if len(got) != 2 || got[0] != "tag:5,explicit" || got[1] != "" {
		t.Errorf("StructFields() tags = %v, want [%q %q]", got, "tag:5,explicit", "")
	}
}
