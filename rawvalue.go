package der

// RawValue is an opaque TLV carrier used as the intermediate form for
// discriminated-union alternatives and for any value whose type is not known
// in advance. See spec.md §3.
type RawValue struct {
	Class      Class
	Tag        int
	IsCompound bool
	Bytes      []byte // the value portion
	FullBytes  []byte // optional cached encoding of the entire TLV
}

// marshalRawValue implements RawValue's Marshaler contract: if FullBytes is
// set it is emitted verbatim, otherwise a fresh header is built from
// Class/Tag/IsCompound/len(Bytes) followed by Bytes. params is accepted for
// interface symmetry but, like the source this package was derived from,
// RawValue's own Class/Tag always take precedence over a caller override:
// a RawValue already carries its own identity.
func marshalRawValue(rv RawValue) []byte {
	if len(rv.FullBytes) > 0 {
		return append([]byte(nil), rv.FullBytes...)
	}
	header := TagAndLength{rv.Class, rv.Tag, len(rv.Bytes), rv.IsCompound}
	return append(header.encode(), rv.Bytes...)
}

// unmarshalRawValue parses one TLV from data. Per spec.md §9 this fixes a
// mis-slicing defect in the source this package was derived from: Bytes is
// bound to exactly the declared length, and the remainder begins
// immediately after it.
func unmarshalRawValue(data []byte) (RawValue, []byte, error) {
	tl, body, err := decodeTagAndLength(data)
	if err != nil {
		return RawValue{}, nil, err
	}
	content, remainder, err := sliceContent(body, tl.Length)
	if err != nil {
		return RawValue{}, nil, err
	}
	bytesLen := len(data) - len(body)
	return RawValue{
		Class:      tl.Class,
		Tag:        tl.Tag,
		IsCompound: tl.IsCompound,
		Bytes:      content,
		FullBytes:  data[:bytesLen+tl.Length],
	}, remainder, nil
}
