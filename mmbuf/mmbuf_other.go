//go:build !unix && !windows

package mmbuf

import "os"

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	data, err := Aligned(size, PageSize())
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

// PageSize returns the operating system's memory page size.
func PageSize() int {
	return os.Getpagesize()
}
