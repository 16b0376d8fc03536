package der

import (
	"errors"
	"testing"
)

func TestParseFieldParameters(t *testing.T) {
	tests := map[string]struct {
		tag     string
		want    FieldParameters
		wantErr bool
	}{
		"empty":              {"", FieldParameters{}, false},
		"explicit with tag":  {"tag:5,explicit", FieldParameters{Tag: ptr(5), Explicit: true}, false},
		"implicit with tag":  {"tag:5,implicit", FieldParameters{Tag: ptr(5)}, false},
		"application":        {"tag:1,application", FieldParameters{Tag: ptr(1), Application: true}, false},
		"private":            {"tag:1,private", FieldParameters{Tag: ptr(1), Private: true}, false},
		"unknown token":      {"bogus", FieldParameters{}, true},
		"malformed tag":      {"tag:x", FieldParameters{}, true},
		"explicit needs tag": {"explicit", FieldParameters{}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFieldParameters(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFieldParameters(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Explicit != tt.want.Explicit || got.Application != tt.want.Application || got.Private != tt.want.Private {
				t.Errorf("ParseFieldParameters(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
			if (got.Tag == nil) != (tt.want.Tag == nil) || (got.Tag != nil && *got.Tag != *tt.want.Tag) {
				t.Errorf("ParseFieldParameters(%q).Tag = %v, want %v", tt.tag, got.Tag, tt.want.Tag)
			}
		})
	}
}

func ptr(n int) *int { return &n }

func TestMarshalRejectsUnsupportedType(t *testing.T) {
	_, err := Marshal(3.14)
	if err == nil {
		t.Fatal("Marshal(float64) should fail")
	}
	var structErr *StructuralError
	if !errors.As(err, &structErr) {
		t.Errorf("Marshal(float64) error = %v, want *StructuralError", err)
	}
}

func TestMarshalRejectsBadStructTag(t *testing.T) {
	type Record struct {
		A int32 `der:"nonsense"`
	}
	_, err := Marshal(Record{A: 1})
	if err == nil {
		t.Fatal("Marshal() should fail on an unknown struct tag token")
	}
}
