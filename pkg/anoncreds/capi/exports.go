//go:build cgo && !windows

package capi

/*
#include <stdint.h>
#include <stdlib.h>

typedef uintptr_t anoncreds_handle_t;
*/
import "C"

import "unsafe"

const cgoExports = true

func goText(s *C.char) *string {
	if s == nil {
		return nil
	}
	v := C.GoString(s)
	return &v
}

func storeHandle(out *C.anoncreds_handle_t, h Handle) {
	*out = C.anoncreds_handle_t(h)
}

//export anoncreds_claim_attributes_builder_new
func anoncreds_claim_attributes_builder_new(builderP *C.anoncreds_handle_t) C.int {
	if builderP == nil {
		return C.int(InvalidParam1)
	}
	var h Handle
	code := AttributeSetBuilderNew(&h)
	if code == Success {
		storeHandle(builderP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_builder_add_attr
func anoncreds_claim_attributes_builder_add_attr(builder C.anoncreds_handle_t, attr *C.char, builderP *C.anoncreds_handle_t) C.int {
	var h Handle
	out := &h
	if builderP == nil {
		out = nil
	}
	code := AttributeSetBuilderAddAttr(Handle(builder), goText(attr), out)
	if code == Success {
		storeHandle(builderP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_builder_finalize
func anoncreds_claim_attributes_builder_finalize(builder C.anoncreds_handle_t, attrsP *C.anoncreds_handle_t) C.int {
	var h Handle
	out := &h
	if attrsP == nil {
		out = nil
	}
	code := AttributeSetBuilderFinalize(Handle(builder), out)
	if code == Success {
		storeHandle(attrsP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_free
func anoncreds_claim_attributes_free(attrs C.anoncreds_handle_t) C.int {
	return C.int(AttributeSetFree(Handle(attrs)))
}

//export anoncreds_claim_attributes_values_builder_new
func anoncreds_claim_attributes_values_builder_new(builderP *C.anoncreds_handle_t) C.int {
	if builderP == nil {
		return C.int(InvalidParam1)
	}
	var h Handle
	code := AttributeValueMapBuilderNew(&h)
	if code == Success {
		storeHandle(builderP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_values_builder_add_attr_value
func anoncreds_claim_attributes_values_builder_add_attr_value(builder C.anoncreds_handle_t, attr, decValue *C.char, builderP *C.anoncreds_handle_t) C.int {
	var h Handle
	out := &h
	if builderP == nil {
		out = nil
	}
	code := AttributeValueMapBuilderAddAttrValue(Handle(builder), goText(attr), goText(decValue), out)
	if code == Success {
		storeHandle(builderP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_values_builder_finalize
func anoncreds_claim_attributes_values_builder_finalize(builder C.anoncreds_handle_t, valuesP *C.anoncreds_handle_t) C.int {
	var h Handle
	out := &h
	if valuesP == nil {
		out = nil
	}
	code := AttributeValueMapBuilderFinalize(Handle(builder), out)
	if code == Success {
		storeHandle(valuesP, h)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_values_free
func anoncreds_claim_attributes_values_free(values C.anoncreds_handle_t) C.int {
	return C.int(AttributeValueMapFree(Handle(values)))
}

//export anoncreds_claim_attributes_to_json
func anoncreds_claim_attributes_to_json(attrs C.anoncreds_handle_t, jsonP **C.char) C.int {
	var s string
	out := &s
	if jsonP == nil {
		out = nil
	}
	code := AttributeSetToJSON(Handle(attrs), out)
	if code == Success {
		*jsonP = C.CString(s)
	}
	return C.int(code)
}

//export anoncreds_claim_attributes_values_to_json
func anoncreds_claim_attributes_values_to_json(values C.anoncreds_handle_t, jsonP **C.char) C.int {
	var s string
	out := &s
	if jsonP == nil {
		out = nil
	}
	code := AttributeValueMapToJSON(Handle(values), out)
	if code == Success {
		*jsonP = C.CString(s)
	}
	return C.int(code)
}

// Strings returned by the *_to_json functions are allocated with malloc and
// must be freed here.
//
//export anoncreds_string_free
func anoncreds_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// The wrappers below call the exports the way a C caller does: text goes
// through C.CString (nil becomes NULL), out-params are C-typed and prefilled
// with unsetHandle so a skipped store is observable, and returned strings are
// copied out and freed with anoncreds_string_free.

const unsetHandle = ^Handle(0)

func cText(s *string) *C.char {
	if s == nil {
		return nil
	}
	return C.CString(*s)
}

func cFree(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func cOut(null bool) (*C.anoncreds_handle_t, *C.anoncreds_handle_t) {
	out := new(C.anoncreds_handle_t)
	*out = C.anoncreds_handle_t(unsetHandle)
	if null {
		return nil, out
	}
	return out, out
}

func cAttrsBuilderNew(nullOut bool) (ErrorCode, Handle) {
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_builder_new(p)
	return ErrorCode(code), Handle(*out)
}

func cAttrsAdd(builder Handle, attr *string, nullOut bool) (ErrorCode, Handle) {
	a := cText(attr)
	defer cFree(a)
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_builder_add_attr(C.anoncreds_handle_t(builder), a, p)
	return ErrorCode(code), Handle(*out)
}

func cAttrsFinalize(builder Handle, nullOut bool) (ErrorCode, Handle) {
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_builder_finalize(C.anoncreds_handle_t(builder), p)
	return ErrorCode(code), Handle(*out)
}

func cAttrsFree(attrs Handle) ErrorCode {
	return ErrorCode(anoncreds_claim_attributes_free(C.anoncreds_handle_t(attrs)))
}

func cValuesBuilderNew(nullOut bool) (ErrorCode, Handle) {
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_values_builder_new(p)
	return ErrorCode(code), Handle(*out)
}

func cValuesAdd(builder Handle, attr, decValue *string, nullOut bool) (ErrorCode, Handle) {
	a, d := cText(attr), cText(decValue)
	defer cFree(a)
	defer cFree(d)
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_values_builder_add_attr_value(C.anoncreds_handle_t(builder), a, d, p)
	return ErrorCode(code), Handle(*out)
}

func cValuesFinalize(builder Handle, nullOut bool) (ErrorCode, Handle) {
	p, out := cOut(nullOut)
	code := anoncreds_claim_attributes_values_builder_finalize(C.anoncreds_handle_t(builder), p)
	return ErrorCode(code), Handle(*out)
}

func cValuesFree(values Handle) ErrorCode {
	return ErrorCode(anoncreds_claim_attributes_values_free(C.anoncreds_handle_t(values)))
}

// cJSON runs export with a JSON out-param. The bool reports whether a string
// was written; it is freed before returning.
func cJSON(export func(C.anoncreds_handle_t, **C.char) C.int, h Handle, nullOut bool) (ErrorCode, string, bool) {
	var s *C.char
	p := &s
	if nullOut {
		p = nil
	}
	code := export(C.anoncreds_handle_t(h), p)
	if s == nil {
		return ErrorCode(code), "", false
	}
	defer anoncreds_string_free(s)
	return ErrorCode(code), C.GoString(s), true
}

func cAttrsToJSON(attrs Handle, nullOut bool) (ErrorCode, string, bool) {
	return cJSON(anoncreds_claim_attributes_to_json, attrs, nullOut)
}

func cValuesToJSON(values Handle, nullOut bool) (ErrorCode, string, bool) {
	return cJSON(anoncreds_claim_attributes_values_to_json, values, nullOut)
}
