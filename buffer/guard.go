package buffer

import (
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/internal/logger"
)

// raise logs a fatal condition and panics with it.
func raise(fe *errs.FatalError, attrs ...any) {
	logger.L().Error(fe.Error(), attrs...)
	panic(fe)
}

// Guard runs fn and converts a fatal buffer condition raised inside it into an error.
// Any other panic is propagated unchanged.
func Guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if fe, ok := r.(*errs.FatalError); ok {
			err = fe
			return
		}
		panic(r)
	}()

	fn()

	return nil
}
