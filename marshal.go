package der

import (
	"reflect"

	"github.com/kwittenburg/der/internal/fields"
)

// Marshaler is the encoding half of the per-type contract described in
// spec.md §4.6. int32 and []byte cannot carry methods in Go, so marshalValue
// dispatches those kinds directly by reflect.Kind; Marshaler exists for
// named types, such as RawValue, that can implement it.
type Marshaler interface {
	MarshalWithParams(params *FieldParameters) ([]byte, error)
}

var marshalerType = reflect.TypeFor[Marshaler]()

func (rv RawValue) MarshalWithParams(_ *FieldParameters) ([]byte, error) {
	return marshalRawValue(rv), nil
}

// Marshal encodes v into its DER TLV form using default parameters.
func Marshal(v any) ([]byte, error) {
	return MarshalWithParams(v, nil)
}

// MarshalWithParams encodes v into its DER TLV form, honoring params'
// tagging directives per the unified rule of spec.md §4.6.
func MarshalWithParams(v any, params *FieldParameters) ([]byte, error) {
	return marshalValue(reflect.ValueOf(v), params)
}

// marshalValue is the central encode dispatcher: it checks for an explicit
// Marshaler implementation first, then falls back to reflect.Kind-based
// handling of the built-in supported shapes (spec.md §4.4, §4.5, §4.7, §4.8).
func marshalValue(v reflect.Value, params *FieldParameters) ([]byte, error) {
	if v.IsValid() && v.Type().Implements(marshalerType) {
		return v.Interface().(Marshaler).MarshalWithParams(params)
	}

	switch v.Kind() {
	case reflect.Int32:
		content := encodeInt32(int32(v.Int()))
		return wrapWithParams(content, false, ClassUniversal, TagInteger, params), nil

	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return nil, structuralErrorf(nil, "unsupported slice element type %s", v.Type().Elem())
		}
		return wrapWithParams(v.Bytes(), false, ClassUniversal, TagOctetString, params), nil

	case reflect.Struct:
		if isChoiceStruct(v.Type()) {
			return marshalChoice(v)
		}
		content, err := marshalRecordContent(v)
		if err != nil {
			return nil, err
		}
		return wrapWithParams(content, true, ClassUniversal, TagSequence, params), nil

	default:
		return nil, structuralErrorf(nil, "unsupported type %s", v.Type())
	}
}

// marshalRecordContent implements the field-concatenation half of spec.md
// §4.7: each field is marshaled in declared order with a FieldParameters
// parsed from its own struct tag, and the resulting byte blocks are
// concatenated. The outer TLV wrapping is applied uniformly by the caller
// via wrapWithParams, since a record is itself a type satisfying the
// unified rule of spec.md §4.6.
func marshalRecordContent(v reflect.Value) ([]byte, error) {
	var buf []byte
	for fv, rawTag := range fields.StructFields(v) {
		p, err := ParseFieldParameters(rawTag)
		if err != nil {
			return nil, err
		}
		b, err := marshalValue(fv, &p)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return buf, nil
}
