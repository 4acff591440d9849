//go:build !windows

package dated

const newline = "\n"
