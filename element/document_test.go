package element

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

func TestElements(t *testing.T) {
	require := require.New(t)

	doc := encodeDoc(t, func(w *encoder) {
		w.Int32("a", 1).String(format.TypeString, "b", "two").Doc(format.TypeArray, "c", func(w *encoder) {
			w.Bool("0", true)
		})
	})

	var names []string
	for e, err := range Elements(doc) {
		require.NoError(err)
		names = append(names, e.FieldName())
	}
	require.Equal([]string{"a", "b", "c"}, names)

	for range Elements(encodeDoc(t, nil)) {
		require.Fail("empty document yielded an element")
	}

	// Early break.
	count := 0
	for range Elements(doc) {
		count++
		break
	}
	require.Equal(1, count)
}

func TestElementsErrors(t *testing.T) {
	valid := encodeDoc(t, func(w *encoder) { w.Int32("a", 1) })

	truncatedLen := append([]byte(nil), valid...)
	truncatedLen[0] = 200

	noTerminator := append([]byte(nil), valid...)
	noTerminator[len(noTerminator)-1] = 1

	// Declared length stops inside the int32 value.
	shortElement := []byte{9, 0, 0, 0, byte(format.TypeInt32), 'a', 0, 1, 0}

	earlyEOO := []byte{6, 0, 0, 0, 0, 0}

	tests := []struct {
		name string
		doc  []byte
		want error
	}{
		{"too short", []byte{5, 0, 0}, errs.ErrInsufficientBytes},
		{"length past data", truncatedLen, errs.ErrInsufficientBytes},
		{"length below minimum", []byte{4, 0, 0, 0, 0}, errs.ErrInvalidLength},
		{"missing terminator", noTerminator, errs.ErrInvalidDocument},
		{"element past end", shortElement, errs.ErrInsufficientBytes},
		{"early EOO", earlyEOO, errs.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got error
			for _, err := range Elements(tt.doc) {
				if err != nil {
					got = err
				}
			}
			require.ErrorIs(t, got, tt.want)
			require.ErrorIs(t, Validate(tt.doc), tt.want)
		})
	}
}

func TestValidateNested(t *testing.T) {
	require := require.New(t)

	doc := encodeDoc(t, func(w *encoder) {
		w.Doc(format.TypeEmbeddedDocument, "outer", func(w *encoder) {
			w.Doc(format.TypeArray, "inner", func(w *encoder) { w.Int64("0", 1) })
		}).CodeWithScope("code", "f()", func(w *encoder) { w.Empty(format.TypeNull, "s") })
	})
	require.NoError(Validate(doc))

	// Break the innermost terminator; the outer lengths stay consistent.
	bad := append([]byte(nil), doc...)
	innerEnd := 4 + 1 + len("outer\x00") + 4 + 1 + len("inner\x00") + 4 + 1 + 2 + 8
	require.Equal(byte(0), bad[innerEnd])
	bad[innerEnd] = 7

	err := Validate(bad)
	require.ErrorIs(err, errs.ErrInvalidDocument)
	require.ErrorContains(err, `field "outer"`)
}
