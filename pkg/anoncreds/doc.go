// Package anoncreds builds the claim attribute values consumed by an
// anonymous-credential issuance protocol.
//
// Two pipelines share one construction discipline:
//
//	AttributeSetBuilder      -> AttributeSet       (unique names, canonical order)
//	AttributeValueMapBuilder -> AttributeValueMap  (name -> decimal value)
//
// # Move-only builders
//
// Builders are linear values. Every successful AddAttr, AddAttrValue or
// Finalize consumes the receiver and returns its successor; the consumed
// builder is tombstoned and any further call on it returns
// ErrBuilderConsumed. Always rebind to the returned builder:
//
//	b, _ := anoncreds.NewAttributeSetBuilder()
//	b, err = b.AddAttr("sex")
//	if err != nil { ... }
//	set, err := b.Finalize()
//	defer set.Release()
//
// A failed add returns the error and leaves the receiver unchanged, so the
// previous builder may be retried with corrected input. At the C boundary
// (package capi) the stricter rule applies: a consumed handle is gone even if
// the call fails.
//
// # Canonical order
//
// AttributeSet enumerates names in ascending byte-wise lexicographic order
// regardless of insertion order. Commitments over the set must be stable
// across independent reconstructions of the same logical attribute list, so
// this order is part of the contract, not an implementation detail.
//
// # Decimal values
//
// Values are non-negative integers written as ASCII digits ("0", "25",
// "1139481716457488690172217916278103335"). Only the format is validated;
// reduction into a group is the signature scheme's job.
//
// # Name comparison
//
// Attribute names compare byte for byte. "Age" and "age" are distinct and
// no trimming is performed.
//
// # Release
//
// Products are released explicitly. Release is terminal and a value map
// zeroizes its digits on release.
package anoncreds
