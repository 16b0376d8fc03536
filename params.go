package der

import (
	"strconv"
	"strings"
)

// FieldParameters is the immutable per-field (or per-variant) directive
// bundle consumed by the marshal/unmarshal engine. Most values come from
// parsing a `der` struct tag via ParseFieldParameters; DefaultValue,
// StringType, TimeType, Set, and OmitEmpty are part of the data model for
// parity with the source this package was derived from but are never
// consulted by the encoder/decoder.
type FieldParameters struct {
	Optional     bool
	Explicit     bool
	Application  bool
	Private      bool
	DefaultValue *int64
	Tag          *int
	StringType   int
	TimeType     int
	Set          bool
	OmitEmpty    bool
}

// class returns the DER class implied by p: APPLICATION or PRIVATE if
// requested, else CONTEXT_SPECIFIC as soon as a tag override is present,
// else UNIVERSAL.
func (p *FieldParameters) class() Class {
	switch {
	case p == nil:
		return ClassUniversal
	case p.Application:
		return ClassApplication
	case p.Private:
		return ClassPrivate
	case p.Tag != nil:
		return ClassContextSpecific
	default:
		return ClassUniversal
	}
}

// ParseFieldParameters parses a `der` struct tag value into a
// FieldParameters. Unknown tokens and malformed tag integers are reported as
// a *StructuralError, matching spec.md §6's "rejected at derivation time".
func ParseFieldParameters(str string) (FieldParameters, error) {
	var p FieldParameters
	if str == "" {
		return p, nil
	}
	for _, part := range strings.Split(str, ",") {
		switch {
		case part == "optional":
			p.Optional = true
		case part == "explicit":
			p.Explicit = true
		case part == "implicit":
			p.Explicit = false
		case part == "application":
			p.Application = true
			p.Private = false
		case part == "private":
			p.Private = true
			p.Application = false
		case part == "set":
			p.Set = true
		case part == "omitempty":
			p.OmitEmpty = true
		case strings.HasPrefix(part, "tag:"):
			n, err := strconv.Atoi(part[len("tag:"):])
			if err != nil || n < 0 {
				return FieldParameters{}, structuralErrorf(err, "invalid tag in struct tag %q", str)
			}
			p.Tag = &n
		default:
			return FieldParameters{}, structuralErrorf(nil, "unknown der struct tag token %q", part)
		}
	}
	if p.Explicit && p.Tag == nil {
		return FieldParameters{}, structuralErrorf(nil, "explicit tagging requires a tag in struct tag %q", str)
	}
	return p, nil
}
