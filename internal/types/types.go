// Package types implements the structural type interner shared by the
// resolver and the semantic pass. Types are represented as compact
// descriptors and interned by structural equality, so two occurrences of
// the same shape (e.g. two `int32` annotations) collapse to one TypeID.
package types

import "fmt"

// TypeID uniquely identifies a type inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates every shape a Type descriptor can take.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindNothing
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	KindArray
	KindPointer
	KindReference
	KindOwn
	KindStruct
	KindAlias
	KindEnum
	KindUnion
	KindTuple
	KindFn
	KindGenericParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindOwn:
		return "own"
	case KindStruct:
		return "struct"
	case KindAlias:
		return "alias"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	case KindGenericParam:
		return "generic_param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats. WidthAny stands for the
// platform-default `int`/`uint`/`float` with no explicit suffix.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// ArrayDynamicLength marks array types with no compile-time known length
// (slices), as opposed to fixed-size arrays which carry a concrete Count.
const ArrayDynamicLength = ^uint32(0)

// Type is a compact descriptor for any supported type. Nominal kinds
// (struct/alias/enum/union/tuple/fn/generic param) store their rich metadata
// out of line, indexed by Payload, so that Type itself stays small and
// trivially comparable for interning.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32 // array length (ArrayDynamicLength for slices), or generic param owner
	Width   Width  // numeric primitive precision
	Mutable bool   // reference mutability
	Payload uint32 // index into the interner's side table for the Kind
}

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeArray describes an array/slice of an element type. Pass
// ArrayDynamicLength for open-ended slices.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakePointer describes a raw pointer.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeReference describes &T or &mut T depending on the mutable flag.
func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}

// MakeOwn describes an owned value of type T (`own T`).
func MakeOwn(elem TypeID) Type {
	return Type{Kind: KindOwn, Elem: elem}
}
