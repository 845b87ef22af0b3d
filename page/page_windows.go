//go:build windows

package page

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func pageSize() int { return os.Getpagesize() }

func mapPages(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("sys/windows.VirtualAlloc failed: %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func protectExec(mem []byte) error {
	var old uint32
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	if err := windows.VirtualProtect(addr, uintptr(len(mem)), windows.PAGE_EXECUTE_READ, &old); err != nil {
		return fmt.Errorf("sys/windows.VirtualProtect failed: %w", err)
	}
	return nil
}

func unmapPages(mem []byte) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("sys/windows.VirtualFree failed: %w", err)
	}
	return nil
}
