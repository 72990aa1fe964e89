package element

import (
	"fmt"
	"iter"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

// Elements iterates the elements of an encoded document, stopping before the terminal
// EOO. Each yielded element is bounded by the document length. A malformed document
// yields one error and stops.
func Elements(doc []byte) iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		n, err := documentLength(doc)
		if err != nil {
			yield(Element{}, err)
			return
		}

		off := format.LengthPrefixSize
		for off < n-1 {
			e := New(doc[off:n])
			if e.EOO() {
				yield(Element{}, fmt.Errorf("%w: EOO at offset %d before end %d", errs.ErrInvalidDocument, off, n))
				return
			}
			size, err := e.SizeBounded(n - 1 - off)
			if err != nil {
				yield(Element{}, fmt.Errorf("element at offset %d: %w", off, err))
				return
			}
			if !yield(e, nil) {
				return
			}
			off += size
		}
	}
}

// Validate checks that doc is a well formed document: consistent length, sizable
// elements, a terminal EOO, and nested documents that are themselves valid.
func Validate(doc []byte) error {
	for e, err := range Elements(doc) {
		if err != nil {
			return err
		}

		switch e.Type() {
		case format.TypeEmbeddedDocument, format.TypeArray:
			if err := Validate(e.Value()); err != nil {
				return fmt.Errorf("field %q: %w", e.FieldName(), err)
			}
		case format.TypeCodeWithScope:
			_, scope, err := e.CodeWithScope()
			if err != nil {
				return fmt.Errorf("field %q: %w", e.FieldName(), err)
			}
			if err := Validate(scope); err != nil {
				return fmt.Errorf("field %q scope: %w", e.FieldName(), err)
			}
		}
	}

	return nil
}

// documentLength returns the declared length of doc after checking it against the data
// and the terminal byte.
func documentLength(doc []byte) (int, error) {
	if len(doc) < format.EmptyDocumentSize {
		return 0, fmt.Errorf("%w: %d bytes", errs.ErrInsufficientBytes, len(doc))
	}
	n := int(endian.ReadLE[int32](doc))
	switch {
	case n < format.EmptyDocumentSize:
		return 0, fmt.Errorf("%w: document length %d", errs.ErrInvalidLength, n)
	case n > len(doc):
		return 0, fmt.Errorf("%w: document length %d exceeds %d bytes", errs.ErrInsufficientBytes, n, len(doc))
	case doc[n-1] != 0:
		return 0, fmt.Errorf("%w: missing terminal EOO", errs.ErrInvalidDocument)
	}

	return n, nil
}
