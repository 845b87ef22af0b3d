//go:build unix

package page

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	anonPrivate = unix.MAP_ANON | unix.MAP_PRIVATE

	readWrite = unix.PROT_READ | unix.PROT_WRITE
	readExec  = unix.PROT_READ | unix.PROT_EXEC
)

func pageSize() int { return unix.Getpagesize() }

func mapPages(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, readWrite, anonPrivate)
	if err != nil {
		return nil, fmt.Errorf("sys/unix.Mmap failed: %w", err)
	}
	return mem, nil
}

func protectExec(mem []byte) error {
	if err := unix.Mprotect(mem, readExec); err != nil {
		return fmt.Errorf("sys/unix.Mprotect failed: %w", err)
	}
	return nil
}

func unmapPages(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("sys/unix.Munmap failed: %w", err)
	}
	return nil
}
