package der

import (
	"errors"
	"testing"
)

type choiceTestA struct{ V int32 }
type choiceTestB struct{ V int32 }

type choiceTestUnion struct {
	Choice
	A *choiceTestA `der:"tag:1,explicit"`
	B *choiceTestB `der:"tag:2,explicit"`
}

func TestMarshalChoiceRejectsNoneSet(t *testing.T) {
	_, err := Marshal(choiceTestUnion{})
	var structErr *StructuralError
	if !errors.As(err, &structErr) {
		t.Errorf("Marshal() error = %v, want *StructuralError", err)
	}
}

func TestMarshalChoiceRejectsMultipleSet(t *testing.T) {
	_, err := Marshal(choiceTestUnion{A: &choiceTestA{V: 1}, B: &choiceTestB{V: 2}})
	var structErr *StructuralError
	if !errors.As(err, &structErr) {
		t.Errorf("Marshal() error = %v, want *StructuralError", err)
	}
}

func TestChoiceRoundTrip(t *testing.T) {
	want := choiceTestUnion{B: &choiceTestB{V: 42}}
	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, rem, err := Unmarshal[choiceTestUnion](data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(rem) != 0 {
		t.Errorf("Unmarshal() remainder = %v, want none", rem)
	}
	if got.A != nil || got.B == nil || got.B.V != 42 {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

// spec.md §4.8 step 3: an unmatched discriminated-union tag fails with a
// structural error rather than panicking.
func TestUnmarshalChoiceRejectsUnmatchedTag(t *testing.T) {
	data := hexBytes(t, "BF 97 38 05 30 03 02 01 01") // tag 3000, no alternative uses it
	_, _, err := Unmarshal[choiceTestUnion](data)
	var structErr *StructuralError
	if !errors.As(err, &structErr) {
		t.Errorf("Unmarshal() error = %v, want *StructuralError", err)
	}
}
