// Package fields provides the reflection-based struct field walker shared by
// the marshal and unmarshal engines. It is deliberately decoupled from the
// parsed FieldParameters representation (which lives in the root package) to
// avoid an import cycle: this package only ever hands back the raw `der`
// struct tag text for a field, leaving parsing to the caller.
package fields

import (
	"iter"
	"reflect"
)

// StructFields returns a sequence over the fields of the struct identified by
// v. Fields tagged `der:"-"` and non-exported fields are skipped. Fields of
// an anonymously embedded struct are surfaced as if they belonged to the
// containing struct. A zero-field marker type (such as the root package's
// Choice) simply contributes no fields of its own when flattened.
func StructFields(v reflect.Value) iter.Seq2[reflect.Value, string] {
	return func(yield func(reflect.Value, string) bool) {
		t := v.Type()
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			tag, ok := field.Tag.Lookup("der")
			if ok && tag == "-" {
				continue
			}
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				for vv, tt := range StructFields(v.Field(i)) {
					if !yield(vv, tt) {
						return
					}
				}
				continue
			}
			if !yield(v.Field(i), tag) {
				return
			}
		}
	}
}
