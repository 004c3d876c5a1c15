package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jacylang/jacy/internal/source"
)

// TypeParamInfo stores metadata about a generic type parameter.
type TypeParamInfo struct {
	Name  source.Symbol
	Owner uint32
	Index uint32
}

// RegisterTypeParam allocates a new generic parameter descriptor, identified
// by the uint32 ID of its owning item (function or struct) plus its
// positional index among that owner's parameters.
func (in *Interner) RegisterTypeParam(name source.Symbol, owner, index uint32) TypeID {
	slot := in.appendTypeParamInfo(TypeParamInfo{Name: name, Owner: owner, Index: index})
	return in.internRaw(Type{Kind: KindGenericParam, Count: owner, Payload: slot})
}

// TypeParamInfo returns metadata for the provided generic parameter.
func (in *Interner) TypeParamInfo(id TypeID) (*TypeParamInfo, bool) {
	if id == NoTypeID {
		return nil, false
	}
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindGenericParam {
		return nil, false
	}
	if int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	info := in.params[tt.Payload]
	return &info, true
}

func (in *Interner) appendTypeParamInfo(info TypeParamInfo) uint32 {
	in.params = append(in.params, info)
	slot, err := safecast.Conv[uint32](len(in.params) - 1)
	if err != nil {
		panic(fmt.Errorf("types: type param overflow: %w", err))
	}
	return slot
}
