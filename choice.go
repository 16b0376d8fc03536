package der

import (
	"reflect"

	"github.com/kwittenburg/der/internal/fields"
)

// Choice is embedded anonymously by a struct that models a discriminated
// union (spec.md §4.8): an enumerated type whose each variant carries
// exactly one positional payload. Every other field of the struct must be a
// pointer, one per alternative, each tagged with `der:"tag:N"` giving the
// alternative's context-specific tag:
//
//	type Body struct {
//	    der.Choice
//	    Request  *Request  `der:"tag:3000,explicit"`
//	    Response *Response `der:"tag:3001,explicit"`
//	}
//
// Exactly one alternative must be non-nil when marshaling. Go has no
// tagged-union construct of its own; this marker-embed idiom is how this
// package fills that gap.
type Choice struct{}

var choiceType = reflect.TypeOf(Choice{})

// isChoiceStruct reports whether t directly embeds Choice.
func isChoiceStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous && f.Type == choiceType {
			return true
		}
	}
	return false
}

type choiceAlternative struct {
	value  reflect.Value
	params FieldParameters
}

// choiceAlternatives walks the pointer fields of a Choice struct, returning
// one entry per alternative with its parsed FieldParameters. Each
// alternative must carry a tag; a missing one is a derivation-time error.
func choiceAlternatives(v reflect.Value) ([]choiceAlternative, error) {
	var alts []choiceAlternative
	for fv, rawTag := range fields.StructFields(v) {
		p, err := ParseFieldParameters(rawTag)
		if err != nil {
			return nil, err
		}
		if p.Tag == nil {
			return nil, structuralErrorf(nil, "choice alternative %s has no tag", fv.Type())
		}
		if fv.Kind() != reflect.Pointer {
			return nil, structuralErrorf(nil, "choice alternative %s is not a pointer type", fv.Type())
		}
		alts = append(alts, choiceAlternative{fv, p})
	}
	return alts, nil
}

// marshalChoice implements the emitted marshaler of spec.md §4.8: exactly one
// alternative must be set; its payload is marshaled with default parameters,
// wrapped in a compound, context-tagged RawValue, and that RawValue is
// marshaled.
func marshalChoice(v reflect.Value) ([]byte, error) {
	alts, err := choiceAlternatives(v)
	if err != nil {
		return nil, err
	}

	var set *choiceAlternative
	for i := range alts {
		if !alts[i].value.IsNil() {
			if set != nil {
				return nil, structuralErrorf(nil, "more than one choice alternative is set")
			}
			set = &alts[i]
		}
	}
	if set == nil {
		return nil, structuralErrorf(nil, "no choice alternative is set")
	}

	payload, err := marshalValue(set.value.Elem(), nil)
	if err != nil {
		return nil, err
	}
	rv := RawValue{
		Class:      set.params.class(),
		Tag:        *set.params.Tag,
		IsCompound: true,
		Bytes:      payload,
	}
	return marshalRawValue(rv), nil
}

// unmarshalChoice implements the emitted unmarshaler of spec.md §4.8: decode
// a RawValue, dispatch on its observed tag to the matching alternative, and
// unmarshal that alternative's payload type from the RawValue's bytes. An
// unmatched tag is a structural error rather than the panic used by the
// source this package was derived from.
func unmarshalChoice(t reflect.Type, data []byte) (reflect.Value, []byte, error) {
	rv, remainder, err := unmarshalRawValue(data)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	out := reflect.New(t).Elem()
	alts, err := choiceAlternatives(out)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	for _, alt := range alts {
		if alt.params.class() != rv.Class || *alt.params.Tag != rv.Tag {
			continue
		}
		elemType := alt.value.Type().Elem()
		elem := reflect.New(elemType)
		rest, err := unmarshalValue(elem.Elem(), rv.Bytes, nil)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if len(rest) != 0 {
			return reflect.Value{}, nil, structuralErrorf(nil, "%d trailing octets after decoding choice alternative", len(rest))
		}
		alt.value.Set(elem)
		return out, remainder, nil
	}
	return reflect.Value{}, nil, structuralErrorf(nil, "no choice alternative matches tag [%s %d]", rv.Class, rv.Tag)
}
