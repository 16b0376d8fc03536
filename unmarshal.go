package der

import (
	"reflect"

	"github.com/kwittenburg/der/internal/fields"
)

// Unmarshaler is the decoding half of the per-type contract described in
// spec.md §4.6. It consumes one TLV from the head of data and reports the
// unread remainder.
type Unmarshaler interface {
	UnmarshalWithParams(data []byte, params *FieldParameters) (remainder []byte, err error)
}

var unmarshalerType = reflect.TypeFor[Unmarshaler]()

func (rv *RawValue) UnmarshalWithParams(data []byte, _ *FieldParameters) ([]byte, error) {
	parsed, remainder, err := unmarshalRawValue(data)
	if err != nil {
		return nil, err
	}
	*rv = parsed
	return remainder, nil
}

// Unmarshal decodes one value of type T from the head of data using default
// parameters, returning the unread remainder.
func Unmarshal[T any](data []byte) (T, []byte, error) {
	return UnmarshalWithParams[T](data, nil)
}

// UnmarshalWithParams decodes one value of type T from the head of data,
// honoring params' tagging directives per the unified rule of spec.md §4.6.
func UnmarshalWithParams[T any](data []byte, params *FieldParameters) (T, []byte, error) {
	var out T
	v := reflect.ValueOf(&out).Elem()
	remainder, err := unmarshalValue(v, data, params)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return out, remainder, nil
}

// unmarshalValue is the central decode dispatcher, mirroring marshalValue.
func unmarshalValue(v reflect.Value, data []byte, params *FieldParameters) ([]byte, error) {
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(unmarshalerType) {
		return v.Addr().Interface().(Unmarshaler).UnmarshalWithParams(data, params)
	}

	switch v.Kind() {
	case reflect.Int32:
		content, _, remainder, err := decodeTLV(data, ClassUniversal, TagInteger, params)
		if err != nil {
			return nil, err
		}
		n, err := decodeInt32(content)
		if err != nil {
			return nil, err
		}
		v.SetInt(int64(n))
		return remainder, nil

	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return nil, structuralErrorf(nil, "unsupported slice element type %s", v.Type().Elem())
		}
		content, _, remainder, err := decodeTLV(data, ClassUniversal, TagOctetString, params)
		if err != nil {
			return nil, err
		}
		v.SetBytes(append([]byte(nil), content...))
		return remainder, nil

	case reflect.Struct:
		if isChoiceStruct(v.Type()) {
			result, remainder, err := unmarshalChoice(v.Type(), data)
			if err != nil {
				return nil, err
			}
			v.Set(result)
			return remainder, nil
		}
		content, _, remainder, err := decodeTLV(data, ClassUniversal, TagSequence, params)
		if err != nil {
			return nil, err
		}
		if err := unmarshalRecordContent(v, content); err != nil {
			return nil, err
		}
		return remainder, nil

	default:
		return nil, structuralErrorf(nil, "unsupported type %s", v.Type())
	}
}

// unmarshalRecordContent implements the field-by-field half of spec.md
// §4.7: fields are decoded in declared order from content, each rebinding
// content to its own returned remainder. Per spec.md §9, decoding is bound
// to the record's declared length: any octets left over once every field has
// been decoded are a structural error rather than silently ignored.
func unmarshalRecordContent(v reflect.Value, content []byte) error {
	for fv, rawTag := range fields.StructFields(v) {
		p, err := ParseFieldParameters(rawTag)
		if err != nil {
			return err
		}
		content, err = unmarshalValue(fv, content, &p)
		if err != nil {
			return err
		}
	}
	if len(content) != 0 {
		return structuralErrorf(nil, "%d trailing octets after decoding declared record fields", len(content))
	}
	return nil
}
