package ast

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jacylang/jacy/internal/source"
)

// FnModifier is a bitflag set of the modifier keywords that may prefix a
// function declaration (`pub`, `async`).
type FnModifier uint8

const (
	// FnModifierPublic marks a function declared with a leading `pub`.
	FnModifierPublic FnModifier = 1 << iota
	// FnModifierAsync marks a function declared with a leading `async`.
	FnModifierAsync
)

// FnParam is a single parameter in a function signature.
type FnParam struct {
	Name      source.Symbol
	Type      TypeID
	Default   ExprID
	Variadic  bool
	AttrStart AttrID
	AttrCount uint32
	Span      source.Span
}

// FnItem is a function declaration: a top-level `fn` or a function nested
// in an extern block. Contract `fn` requirements use the sibling
// ContractFnReq shape instead, since they never carry a body.
type FnItem struct {
	Name                  source.Symbol
	NameSpan              source.Span
	Generics              []source.Symbol
	GenericCommas         []source.Span
	GenericsTrailingComma bool
	GenericsSpan          source.Span
	TypeParamsStart       TypeParamID
	TypeParamsCount       uint32
	ParamsStart           FnParamID
	ParamsCount           uint32
	ParamCommas           []source.Span
	ParamsTrailingComma   bool
	FnKeywordSpan         source.Span
	ParamsSpan            source.Span
	ReturnSpan            source.Span
	SemicolonSpan         source.Span
	ReturnType            TypeID
	Body                  StmtID
	Flags                 FnModifier
	AttrStart             AttrID
	AttrCount             uint32
	Span                  source.Span
}

// Fn returns the FnItem for the given ItemID, or nil/false if invalid.
func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// FnByPayload returns the FnItem stored directly under a PayloadID, used by
// extern block members, which reference a FnItem without wrapping it in a
// top-level Item.
func (i *Items) FnByPayload(payload PayloadID) *FnItem {
	if !payload.IsValid() {
		return nil
	}
	return i.Fns.Get(uint32(payload))
}

// FnParam returns the FnParam record for the given FnParamID.
func (i *Items) FnParam(id FnParamID) *FnParam {
	if !id.IsValid() {
		return nil
	}
	return i.FnParams.Get(uint32(id))
}

// GetFnParamIDs returns the slice of FnParamIDs belonging to fn.
func (i *Items) GetFnParamIDs(fn *FnItem) []FnParamID {
	if fn == nil {
		return nil
	}
	return i.GetFnParamIDRange(fn.ParamsStart, fn.ParamsCount)
}

// GetFnParamIDRange returns the slice of FnParamIDs in the contiguous run
// starting at start, for callers (like lambda expressions) that hold a
// start/count pair without a wrapping FnItem.
func (i *Items) GetFnParamIDRange(start FnParamID, count uint32) []FnParamID {
	if count == 0 || !start.IsValid() {
		return nil
	}
	ids := make([]FnParamID, count)
	base := uint32(start)
	for idx := uint32(0); idx < count; idx++ {
		ids[idx] = FnParamID(base + idx)
	}
	return ids
}

// GetFnTypeParamIDs returns the slice of TypeParamIDs belonging to fn.
func (i *Items) GetFnTypeParamIDs(fn *FnItem) []TypeParamID {
	if fn == nil {
		return nil
	}
	return i.GetTypeParamIDs(fn.TypeParamsStart, fn.TypeParamsCount)
}

func (i *Items) allocateFnParams(params []FnParam) (start FnParamID, count uint32) {
	if len(params) == 0 {
		return NoFnParamID, 0
	}
	for idx := range params {
		id := FnParamID(i.FnParams.Allocate(params[idx]))
		if idx == 0 {
			start = id
		}
	}
	var err error
	count, err = safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("fn params overflow: %w", err))
	}
	return start, count
}

// AllocateFnParams allocates a contiguous run of FnParam records and
// returns the start id and count, for callers (like lambda parsing) that
// build a parameter list outside of a full NewFn/NewExternFn call.
func (i *Items) AllocateFnParams(params []FnParam) (FnParamID, uint32) {
	return i.allocateFnParams(params)
}

// NewFnParam allocates a standalone FnParam record.
func (i *Items) NewFnParam(name source.Symbol, typ TypeID, def ExprID, variadic bool) FnParamID {
	return FnParamID(i.FnParams.Allocate(FnParam{
		Name:     name,
		Type:     typ,
		Default:  def,
		Variadic: variadic,
	}))
}

func (i *Items) newFnPayload(
	name source.Symbol,
	nameSpan source.Span,
	generics []source.Symbol,
	genericCommas []source.Span,
	genericsTrailing bool,
	genericsSpan source.Span,
	typeParamsStart TypeParamID,
	typeParamsCount uint32,
	paramsStart FnParamID,
	paramsCount uint32,
	paramCommas []source.Span,
	paramsTrailing bool,
	fnKwSpan source.Span,
	paramsSpan source.Span,
	returnSpan source.Span,
	semicolonSpan source.Span,
	returnType TypeID,
	body StmtID,
	flags FnModifier,
	attrStart AttrID,
	attrCount uint32,
	span source.Span,
) FnItem {
	return FnItem{
		Name:                  name,
		NameSpan:              nameSpan,
		Generics:              append([]source.Symbol(nil), generics...),
		GenericCommas:         append([]source.Span(nil), genericCommas...),
		GenericsTrailingComma: genericsTrailing,
		GenericsSpan:          genericsSpan,
		TypeParamsStart:       typeParamsStart,
		TypeParamsCount:       typeParamsCount,
		ParamsStart:           paramsStart,
		ParamsCount:           paramsCount,
		ParamCommas:           append([]source.Span(nil), paramCommas...),
		ParamsTrailingComma:   paramsTrailing,
		FnKeywordSpan:         fnKwSpan,
		ParamsSpan:            paramsSpan,
		ReturnSpan:            returnSpan,
		SemicolonSpan:         semicolonSpan,
		ReturnType:            returnType,
		Body:                  body,
		Flags:                 flags,
		AttrStart:             attrStart,
		AttrCount:             attrCount,
		Span:                  span,
	}
}

// NewFn creates a new top-level function item.
func (i *Items) NewFn(
	name source.Symbol,
	nameSpan source.Span,
	generics []source.Symbol,
	genericCommas []source.Span,
	genericsTrailing bool,
	genericsSpan source.Span,
	typeParams []TypeParamSpec,
	params []FnParam,
	paramCommas []source.Span,
	paramsTrailing bool,
	fnKwSpan source.Span,
	paramsSpan source.Span,
	returnSpan source.Span,
	semicolonSpan source.Span,
	returnType TypeID,
	body StmtID,
	flags FnModifier,
	attrs []Attr,
	span source.Span,
) ItemID {
	typeParamsStart, typeParamsCount := i.allocateTypeParams(typeParams)
	paramsStart, paramsCount := i.allocateFnParams(params)
	attrStart, attrCount := i.allocateAttrs(attrs)
	fnItem := i.newFnPayload(
		name, nameSpan, generics, genericCommas, genericsTrailing, genericsSpan,
		typeParamsStart, typeParamsCount,
		paramsStart, paramsCount, paramCommas, paramsTrailing,
		fnKwSpan, paramsSpan, returnSpan, semicolonSpan, returnType, body,
		flags, attrStart, attrCount, span,
	)
	payloadID := PayloadID(i.Fns.Allocate(fnItem))
	return i.New(ItemFn, span, payloadID)
}

// NewExternFn allocates a FnItem directly into the Fns arena and returns its
// PayloadID, for use as an extern block member, which has no wrapping
// top-level Item.
func (i *Items) NewExternFn(
	name source.Symbol,
	nameSpan source.Span,
	generics []source.Symbol,
	genericCommas []source.Span,
	genericsTrailing bool,
	genericsSpan source.Span,
	typeParams []TypeParamSpec,
	params []FnParam,
	paramCommas []source.Span,
	paramsTrailing bool,
	fnKwSpan source.Span,
	paramsSpan source.Span,
	returnSpan source.Span,
	semicolonSpan source.Span,
	returnType TypeID,
	body StmtID,
	flags FnModifier,
	attrs []Attr,
	span source.Span,
) PayloadID {
	typeParamsStart, typeParamsCount := i.allocateTypeParams(typeParams)
	paramsStart, paramsCount := i.allocateFnParams(params)
	attrStart, attrCount := i.allocateAttrs(attrs)
	fnItem := i.newFnPayload(
		name, nameSpan, generics, genericCommas, genericsTrailing, genericsSpan,
		typeParamsStart, typeParamsCount,
		paramsStart, paramsCount, paramCommas, paramsTrailing,
		fnKwSpan, paramsSpan, returnSpan, semicolonSpan, returnType, body,
		flags, attrStart, attrCount, span,
	)
	return PayloadID(i.Fns.Allocate(fnItem))
}
