package binding

import (
	"fmt"
	"reflect"

	"github.com/arloliu/cdr/encoding"
)

// copyInto assigns *src to *dst. Both must be pointers to the same record type.
func copyInto(dst, src encoding.Message) error {
	dv := reflect.ValueOf(dst)
	sv := reflect.ValueOf(src)
	if dv.Kind() != reflect.Pointer || dv.IsNil() || dv.Type() != sv.Type() {
		return fmt.Errorf("binding: cannot copy %T into %T", src, dst)
	}
	dv.Elem().Set(sv.Elem())

	return nil
}
