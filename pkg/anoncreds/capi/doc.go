// Package capi is the handle-based boundary over package anoncreds.
//
// Foreign callers never see Go pointers. Builders and products live in a
// process-wide handle registry and callers hold opaque Handle values. In
// cgo builds (not Windows) the functions are exported with a C ABI:
//
//	typedef uintptr_t anoncreds_handle_t;
//
//	int anoncreds_claim_attributes_builder_new(anoncreds_handle_t* builder_p);
//	int anoncreds_claim_attributes_builder_add_attr(anoncreds_handle_t builder, const char* attr, anoncreds_handle_t* builder_p);
//	int anoncreds_claim_attributes_builder_finalize(anoncreds_handle_t builder, anoncreds_handle_t* attrs_p);
//	int anoncreds_claim_attributes_free(anoncreds_handle_t attrs);
//	int anoncreds_claim_attributes_values_builder_new(anoncreds_handle_t* builder_p);
//	int anoncreds_claim_attributes_values_builder_add_attr_value(anoncreds_handle_t builder, const char* attr, const char* dec_value, anoncreds_handle_t* builder_p);
//	int anoncreds_claim_attributes_values_builder_finalize(anoncreds_handle_t builder, anoncreds_handle_t* values_p);
//	int anoncreds_claim_attributes_values_free(anoncreds_handle_t values);
//	int anoncreds_claim_attributes_to_json(anoncreds_handle_t attrs, char** json_p);
//	int anoncreds_claim_attributes_values_to_json(anoncreds_handle_t values, char** json_p);
//	void anoncreds_string_free(char* s);
//
// Build the shared library from cmd/libanoncreds with -buildmode=c-shared.
//
// # Ownership
//
//   - new, a successful add and finalize each hand the caller exactly one new
//     handle.
//   - add and finalize consume the builder handle passed in, even when they
//     fail. After an error the caller holds nothing but the code.
//   - Builder handles are never freed directly. Product handles are freed
//     exactly once with the matching *_free call.
//   - Reusing a consumed or freed handle returns InvalidState rather than
//     touching freed memory. Passing a handle of the wrong type returns
//     InvalidStructure and leaves that handle alone.
//
// The Go functions in this package implement the same contract with *string
// standing in for const char* (nil is NULL), which is how the tests drive it.
//
// All calls are synchronous. Distinct handles may be used from different
// threads; a single builder handle must have one owner.
package capi

// ExportsAvailable reports whether this binary carries the C ABI exports.
func ExportsAvailable() bool {
	return cgoExports
}
