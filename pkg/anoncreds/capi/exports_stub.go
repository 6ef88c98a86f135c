//go:build !cgo || windows

package capi

const cgoExports = false
