// Command libanoncreds builds the anoncreds C ABI as a shared library:
//
//	go build -buildmode=c-shared -o libanoncreds.so ./cmd/libanoncreds
//
// The exported functions and their ownership rules are documented in package
// capi.
package main

import _ "github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds/capi"

func main() {}
