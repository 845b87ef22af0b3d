// Package page provides executable memory for assembled code.
//
// A Page is mapped read/write, filled with Write, and flipped to read/execute with Protect. It is
// never writable and executable at the same time.
package page

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	ErrClosed    = errors.New("Page is closed")
	ErrProtected = errors.New("Page is executable and can no longer be written")
)

// replaced in tests
var unmap = unmapPages

// Page is a run of anonymous memory pages. A Page is not safe for concurrent use.
type Page struct {
	mem    []byte
	n      int
	exec   bool
	closed bool
}

// Get the system page size.
func Size() int { return pageSize() }

// Map at least n bytes of read/write memory, rounded up to a multiple of the page size.
func Alloc(n int) (*Page, error) {
	if n < 0 {
		return nil, fmt.Errorf("Invalid page allocation of %d bytes", n)
	}
	size := pageSize()
	if n > size {
		size = (n + size - 1) &^ (size - 1)
	}
	mem, err := mapPages(size)
	if err != nil {
		return nil, err
	}
	return &Page{mem: mem}, nil
}

// Map a page, copy code into it and make it executable.
func New(code []byte) (*Page, error) {
	p, err := Alloc(len(code))
	if err != nil {
		return nil, err
	}
	if err := p.Write(code); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.Protect(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Copy b to the start of the page, replacing anything written before.
func (p *Page) Write(b []byte) error {
	switch {
	case p.closed:
		return ErrClosed
	case p.exec:
		return ErrProtected
	case len(b) > len(p.mem):
		return fmt.Errorf("Cannot write %d bytes to a page of %d bytes", len(b), len(p.mem))
	}
	copy(p.mem, b)
	p.n = len(b)
	return nil
}

// Make the page read/execute. Protecting a page twice is a no-op.
func (p *Page) Protect() error {
	if p.closed {
		return ErrClosed
	}
	if p.exec {
		return nil
	}
	if err := protectExec(p.mem); err != nil {
		return err
	}
	p.exec = true
	return nil
}

// Unmap the page. Func values pointing into the page must not be called afterwards. If unmapping
// fails the page is left open and the error is returned.
func (p *Page) Close() error {
	if p.closed {
		return ErrClosed
	}
	// the page stays open when unmapping fails, so Close may be retried
	if err := unmap(p.mem); err != nil {
		return err
	}
	p.closed = true
	p.mem, p.n = nil, 0
	return nil
}

// Get the address of the first byte of the page, or 0 once closed.
func (p *Page) Addr() uintptr {
	if p.closed {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(p.mem)))
}

// Get the number of bytes written.
func (p *Page) Len() int { return p.n }

// Get the size of the mapping.
func (p *Page) Cap() int { return len(p.mem) }

// Get the bytes written. The slice aliases the mapping and must not be used after Close.
func (p *Page) Bytes() []byte { return p.mem[:p.n] }

// Check if the page has been made executable.
func (p *Page) Executable() bool { return p.exec }
