package page

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Set the executable code for dstAddr to the start of p. This function is entirely unsafe.
//
// dstAddr must be a pointer to a function value, and p must have been made executable. The
// code is called with Go's register-based calling convention: on amd64 integer arguments start
// in RAX and the result is returned in RAX, on riscv64 they start in A0. p must outlive every
// call through the function value.
func SetFunctionCode(dstAddr any, p *Page) error {
	// See "Go 1.1 Function Calls":
	// https://docs.google.com/document/d/1bMwCey-gmqZVTpRax-ESeVuZGmjwbocYs1iHplK-cjo/pub
	type interfaceHeader struct {
		typ  uintptr
		addr **[]byte
	}
	v := reflect.ValueOf(dstAddr)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || !v.Elem().CanSet() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("Destination for SetFunctionCode must be a pointer to a function-value")
	}
	switch {
	case p == nil:
		return fmt.Errorf("SetFunctionCode requires a page")
	case p.closed:
		return ErrClosed
	case !p.exec:
		return fmt.Errorf("Page must be protected before SetFunctionCode")
	}
	header := *(*interfaceHeader)(unsafe.Pointer(&dstAddr))
	// the first word of the slice header is the code address
	*header.addr = &p.mem
	return nil
}
