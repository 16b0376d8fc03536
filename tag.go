package der

import (
	"errors"

	"github.com/kwittenburg/der/internal/tlv"
)

// TagAndLength is the parsed header of one TLV: its class, tag number,
// declared content length, and whether the content is itself a sequence of
// TLVs.
type TagAndLength struct {
	Class      Class
	Tag        int
	Length     int
	IsCompound bool
}

func (tl TagAndLength) encode() []byte {
	return tlv.EncodeHeader(tlv.Class(tl.Class), tl.Tag, tl.Length, tl.IsCompound)
}

// decodeTagAndLength parses one TagAndLength header from the head of data,
// returning it together with the unread remainder (bounded only by the
// header, not by the declared length).
func decodeTagAndLength(data []byte) (TagAndLength, []byte, error) {
	class, tag, length, compound, rest, err := tlv.DecodeHeader(data)
	if err != nil {
		return TagAndLength{}, nil, classifyTLVError(err, "decoding tag and length")
	}
	return TagAndLength{Class(class), tag, length, compound}, rest, nil
}

// classifyTLVError maps an internal/tlv sentinel error onto this package's
// two-kind error taxonomy (spec §7): non-minimality and truncation are
// syntax errors, overflow of representable limits is structural.
func classifyTLVError(err error, context string) error {
	switch {
	case errors.Is(err, tlv.ErrOverflow):
		return structuralErrorf(err, context)
	default:
		return syntaxErrorf(err, context)
	}
}

// wrapWithParams implements the unified parameter rule of spec.md §4.6 for
// any encodable type: content is the type's natural value octets, compound
// says whether that content is itself TLV-structured, and
// naturalClass/naturalTag are the type's default UNIVERSAL identity.
func wrapWithParams(content []byte, compound bool, naturalClass Class, naturalTag int, params *FieldParameters) []byte {
	if params == nil || params.Tag == nil {
		header := TagAndLength{naturalClass, naturalTag, len(content), compound}
		return append(header.encode(), content...)
	}
	if !params.Explicit {
		header := TagAndLength{params.class(), *params.Tag, len(content), compound}
		return append(header.encode(), content...)
	}
	inner := TagAndLength{naturalClass, naturalTag, len(content), compound}
	innerBytes := append(inner.encode(), content...)
	outer := TagAndLength{params.class(), *params.Tag, len(innerBytes), true}
	return append(outer.encode(), innerBytes...)
}

// decodeTLV is the mirror of wrapWithParams: it consumes one TLV from data
// per the expectations implied by naturalClass/naturalTag/params, returning
// the inner content octets, whether that content is compound, and the
// unread remainder.
func decodeTLV(data []byte, naturalClass Class, naturalTag int, params *FieldParameters) (content []byte, compound bool, remainder []byte, err error) {
	tl, body, err := decodeTagAndLength(data)
	if err != nil {
		return nil, false, nil, err
	}

	if params != nil && params.Tag != nil && params.Explicit {
		if err := expectTag(tl, params.class(), *params.Tag); err != nil {
			return nil, false, nil, err
		}
		inner, remainder, err := sliceContent(body, tl.Length)
		if err != nil {
			return nil, false, nil, err
		}

		innerTL, innerBody, err := decodeTagAndLength(inner)
		if err != nil {
			return nil, false, nil, err
		}
		if err := expectTag(innerTL, naturalClass, naturalTag); err != nil {
			return nil, false, nil, err
		}
		innerContent, _, err := sliceContent(innerBody, innerTL.Length)
		if err != nil {
			return nil, false, nil, err
		}
		return innerContent, innerTL.IsCompound, remainder, nil
	}

	expectClass, expectTagNum := naturalClass, naturalTag
	if params != nil && params.Tag != nil {
		expectClass, expectTagNum = params.class(), *params.Tag
	}
	if err := expectTag(tl, expectClass, expectTagNum); err != nil {
		return nil, false, nil, err
	}
	content, remainder, err := sliceContent(body, tl.Length)
	if err != nil {
		return nil, false, nil, err
	}
	return content, tl.IsCompound, remainder, nil
}

// sliceContent splits body into its declared content and the remainder past
// it, rejecting a declared length that body cannot actually satisfy.
func sliceContent(body []byte, length int) (content []byte, remainder []byte, err error) {
	if len(body) < length {
		return nil, nil, syntaxErrorf(nil, "declared length %d exceeds available input", length)
	}
	return body[:length], body[length:], nil
}

// expectTag validates an observed header against an expected class/tag,
// treating UNIVERSAL SET as interchangeable with UNIVERSAL SEQUENCE (spec.md
// §4.3, §8 "Interchangeability").
func expectTag(tl TagAndLength, class Class, tag int) error {
	if tl.Class == class && tl.Tag == tag {
		return nil
	}
	if class == ClassUniversal && tag == TagSequence &&
		tl.Class == ClassUniversal && tl.Tag == TagSet {
		return nil
	}
	return structuralErrorf(nil, "unexpected tag [%s %d], want [%s %d]", tl.Class, tl.Tag, class, tag)
}
