//go:build windows

package dated

const newline = "\r\n"
