package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jacylang/jacy/internal/source"
)

// UnionMemberKind captures the nature of a union variant: a payload type, a
// bare tag with no payload, or a tag carrying named arguments.
type UnionMemberKind uint8

const (
	// UnionMemberType is a plain payload variant, e.g. `int32` in `int32 | string`.
	UnionMemberType UnionMemberKind = iota
	// UnionMemberNothing is the `nothing` bottom variant (Option's "no value").
	UnionMemberNothing
	// UnionMemberTag is a named tag variant, e.g. `Some(T)` or `Err(E)`.
	UnionMemberTag
)

// UnionMember describes a single variant inside a tagged union.
type UnionMember struct {
	Kind    UnionMemberKind
	Type    TypeID
	TagName source.Symbol
	TagArgs []TypeID
}

// UnionInfo stores metadata for a union type.
type UnionInfo struct {
	Name    source.Symbol
	Decl    source.Span
	Members []UnionMember
}

// RegisterUnion allocates a nominal union type slot and returns its TypeID.
func (in *Interner) RegisterUnion(name source.Symbol, decl source.Span) TypeID {
	slot := in.appendUnionInfo(UnionInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// SetUnionMembers stores the resolved members for the union type.
func (in *Interner) SetUnionMembers(typeID TypeID, members []UnionMember) {
	info := in.unionInfo(typeID)
	if info == nil {
		return
	}
	info.Members = cloneUnionMembers(members)
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(typeID TypeID) (*UnionInfo, bool) {
	info := in.unionInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) unionInfo(typeID TypeID) *UnionInfo {
	if in == nil || typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindUnion {
		return nil
	}
	if int(tt.Payload) >= len(in.unions) {
		return nil
	}
	return &in.unions[tt.Payload]
}

func (in *Interner) appendUnionInfo(info UnionInfo) uint32 {
	in.unions = append(in.unions, UnionInfo{
		Name:    info.Name,
		Decl:    info.Decl,
		Members: cloneUnionMembers(info.Members),
	})
	slot, err := safecast.Conv[uint32](len(in.unions) - 1)
	if err != nil {
		panic(fmt.Errorf("types: union info overflow: %w", err))
	}
	return slot
}

func cloneUnionMembers(members []UnionMember) []UnionMember {
	if len(members) == 0 {
		return nil
	}
	result := make([]UnionMember, len(members))
	copy(result, members)
	for i := range result {
		result[i].TagArgs = cloneTypeArgs(result[i].TagArgs)
	}
	return result
}
