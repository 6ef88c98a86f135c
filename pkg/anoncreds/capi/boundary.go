package capi

import (
	"context"
	"log/slog"

	"github.com/hsiuhsiu/anoncreds-go/internal/handles"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds/logging"
)

// Handle is the opaque value foreign callers hold. Zero is never issued and
// plays the role of a NULL pointer.
type Handle = handles.Handle

// Text arguments are *string so a NULL C pointer (nil) is distinguishable
// from an empty string.

func text(p *string) any {
	if p == nil {
		return "<null>"
	}
	return *p
}

func tracing() bool {
	return currentLogger().Enabled(context.Background(), slog.LevelDebug)
}

// trace and traceDone build their attribute lists eagerly, so callers guard
// them with tracing().
func trace(op string, args ...any) {
	currentLogger().Debug(context.Background(), op+": >>>", args...)
}

func traceDone(op string, code ErrorCode, args ...any) {
	args = append(args, "code", code)
	currentLogger().Debug(context.Background(), op+": <<<", args...)
}

func done(op string, code ErrorCode) ErrorCode {
	if tracing() {
		traceDone(op, code)
	}
	return code
}

func put(kind handles.Kind, v any, out *Handle) ErrorCode {
	h, err := registry.Put(kind, v)
	if err != nil {
		return codeOf(err, Unknown)
	}
	*out = h
	return Success
}

// AttributeSetBuilderNew issues a handle to an empty attribute set builder.
// The handle is consumed by AttributeSetBuilderAddAttr or
// AttributeSetBuilderFinalize; it is never freed on its own.
func AttributeSetBuilderNew(builderOut *Handle) ErrorCode {
	const op = "claim_attributes_builder_new"
	if tracing() {
		trace(op)
	}
	if builderOut == nil {
		return done(op, InvalidParam1)
	}
	b, err := anoncreds.NewAttributeSetBuilder()
	if err != nil {
		return done(op, codeOf(err, Unknown))
	}
	code := put(handles.KindAttributeSetBuilder, b, builderOut)
	if tracing() {
		traceDone(op, code, "builder_p", *builderOut)
	}
	return code
}

// AttributeSetBuilderAddAttr consumes builder and, on success, stores a handle
// to its successor containing attr in builderOut. builder is invalid after the
// call whatever the outcome; only a handle of the wrong kind is left alone.
func AttributeSetBuilderAddAttr(builder Handle, attr *string, builderOut *Handle) ErrorCode {
	const op = "claim_attributes_builder_add_attr"
	if tracing() {
		trace(op, "builder", builder, "attr", text(attr))
	}
	if builder == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(builder, handles.KindAttributeSetBuilder)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	if attr == nil {
		return done(op, InvalidParam2)
	}
	if builderOut == nil {
		return done(op, InvalidParam3)
	}

	next, err := v.(*anoncreds.AttributeSetBuilder).AddAttr(*attr)
	if err != nil {
		return done(op, codeOf(err, InvalidParam2))
	}
	code := put(handles.KindAttributeSetBuilder, next, builderOut)
	if tracing() {
		traceDone(op, code, "builder_p", *builderOut)
	}
	return code
}

// AttributeSetBuilderFinalize consumes builder and stores a handle to the
// finalized attribute set in attrsOut. The set handle must be released with
// AttributeSetFree exactly once.
func AttributeSetBuilderFinalize(builder Handle, attrsOut *Handle) ErrorCode {
	const op = "claim_attributes_builder_finalize"
	if tracing() {
		trace(op, "builder", builder)
	}
	if builder == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(builder, handles.KindAttributeSetBuilder)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	if attrsOut == nil {
		return done(op, InvalidParam2)
	}

	set, err := v.(*anoncreds.AttributeSetBuilder).Finalize()
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	code := put(handles.KindAttributeSet, set, attrsOut)
	if code != Success {
		_ = set.Release()
		return done(op, code)
	}
	if tracing() {
		traceDone(op, code, "attrs_p", *attrsOut, "len", set.Len())
	}
	return code
}

// AttributeSetFree releases an attribute set handle.
func AttributeSetFree(attrs Handle) ErrorCode {
	const op = "claim_attributes_free"
	if tracing() {
		trace(op, "attrs", attrs)
	}
	if attrs == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(attrs, handles.KindAttributeSet)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	return done(op, codeOf(v.(*anoncreds.AttributeSet).Release(), InvalidParam1))
}

// AttributeValueMapBuilderNew issues a handle to an empty attribute value map
// builder.
func AttributeValueMapBuilderNew(builderOut *Handle) ErrorCode {
	const op = "claim_attributes_values_builder_new"
	if tracing() {
		trace(op)
	}
	if builderOut == nil {
		return done(op, InvalidParam1)
	}
	b, err := anoncreds.NewAttributeValueMapBuilder()
	if err != nil {
		return done(op, codeOf(err, Unknown))
	}
	code := put(handles.KindAttributeValueMapBuilder, b, builderOut)
	if tracing() {
		traceDone(op, code, "builder_p", *builderOut)
	}
	return code
}

// AttributeValueMapBuilderAddAttrValue consumes builder and, on success,
// stores a handle to its successor binding attr to decValue in builderOut.
// NULL attr or decValue fail with InvalidParam2 and InvalidParam3; an empty
// attr fails with InvalidParam2 and a malformed decValue with
// InvalidNumericFormat.
func AttributeValueMapBuilderAddAttrValue(builder Handle, attr, decValue *string, builderOut *Handle) ErrorCode {
	const op = "claim_attributes_values_builder_add_attr_value"
	if tracing() {
		trace(op, "builder", builder, "attr", text(attr), logging.Redacted("dec_value"))
	}
	if builder == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(builder, handles.KindAttributeValueMapBuilder)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	if attr == nil {
		return done(op, InvalidParam2)
	}
	if decValue == nil {
		return done(op, InvalidParam3)
	}
	if builderOut == nil {
		return done(op, InvalidParam4)
	}

	next, err := v.(*anoncreds.AttributeValueMapBuilder).AddAttrValue(*attr, *decValue)
	if err != nil {
		return done(op, codeOf(err, InvalidParam2))
	}
	code := put(handles.KindAttributeValueMapBuilder, next, builderOut)
	if tracing() {
		traceDone(op, code, "builder_p", *builderOut)
	}
	return code
}

// AttributeValueMapBuilderFinalize consumes builder and stores a handle to the
// finalized value map in valuesOut. The map handle must be released with
// AttributeValueMapFree exactly once.
func AttributeValueMapBuilderFinalize(builder Handle, valuesOut *Handle) ErrorCode {
	const op = "claim_attributes_values_builder_finalize"
	if tracing() {
		trace(op, "builder", builder)
	}
	if builder == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(builder, handles.KindAttributeValueMapBuilder)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	if valuesOut == nil {
		return done(op, InvalidParam2)
	}

	values, err := v.(*anoncreds.AttributeValueMapBuilder).Finalize()
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	code := put(handles.KindAttributeValueMap, values, valuesOut)
	if code != Success {
		_ = values.Release()
		return done(op, code)
	}
	if tracing() {
		traceDone(op, code, "values_p", *valuesOut, "len", values.Len())
	}
	return code
}

// AttributeValueMapFree releases an attribute value map handle, zeroizing the
// stored values.
func AttributeValueMapFree(values Handle) ErrorCode {
	const op = "claim_attributes_values_free"
	if tracing() {
		trace(op, "values", values)
	}
	if values == 0 {
		return done(op, InvalidParam1)
	}
	v, err := registry.Take(values, handles.KindAttributeValueMap)
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	return done(op, codeOf(v.(*anoncreds.AttributeValueMap).Release(), InvalidParam1))
}

// AttributeSetToJSON writes the canonical JSON array of attrs to jsonOut.
// attrs stays owned by the caller.
func AttributeSetToJSON(attrs Handle, jsonOut *string) ErrorCode {
	const op = "claim_attributes_to_json"
	if tracing() {
		trace(op, "attrs", attrs)
	}
	set, code := BorrowAttributeSet(attrs)
	if code != Success {
		return done(op, code)
	}
	if jsonOut == nil {
		return done(op, InvalidParam2)
	}
	data, err := set.MarshalJSON()
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	*jsonOut = string(data)
	return done(op, Success)
}

// AttributeValueMapToJSON writes values as a JSON object to jsonOut. values
// stays owned by the caller.
func AttributeValueMapToJSON(values Handle, jsonOut *string) ErrorCode {
	const op = "claim_attributes_values_to_json"
	if tracing() {
		trace(op, "values", values)
	}
	m, code := BorrowAttributeValueMap(values)
	if code != Success {
		return done(op, code)
	}
	if jsonOut == nil {
		return done(op, InvalidParam2)
	}
	data, err := m.MarshalJSON()
	if err != nil {
		return done(op, codeOf(err, InvalidParam1))
	}
	*jsonOut = string(data)
	return done(op, Success)
}

// BorrowAttributeSet resolves a live attribute set handle for in-process
// consumers such as signing code. Ownership stays with the handle holder; the
// returned set must not be released directly.
func BorrowAttributeSet(attrs Handle) (*anoncreds.AttributeSet, ErrorCode) {
	if attrs == 0 {
		return nil, InvalidParam1
	}
	v, err := registry.Get(attrs, handles.KindAttributeSet)
	if err != nil {
		return nil, codeOf(err, InvalidParam1)
	}
	return v.(*anoncreds.AttributeSet), Success
}

// BorrowAttributeValueMap is BorrowAttributeSet for value maps.
func BorrowAttributeValueMap(values Handle) (*anoncreds.AttributeValueMap, ErrorCode) {
	if values == 0 {
		return nil, InvalidParam1
	}
	v, err := registry.Get(values, handles.KindAttributeValueMap)
	if err != nil {
		return nil, codeOf(err, InvalidParam1)
	}
	return v.(*anoncreds.AttributeValueMap), Success
}
