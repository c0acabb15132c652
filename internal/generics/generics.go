// Package generics models the per-definition generic parameter list with
// its parent chain (spec.md C2): an enum's variant looks up through the
// enum, a method looks up through its impl block or trait (an impl
// block's own params have no parent). Every Param that internal/ty emits is indexed
// in the flat, parent-first 0..N range this package assigns.
package generics

// Param is one generic parameter, identified by its position in the full
// parent-including parameter list of its owning definition.
type Param struct {
	Idx  int
	Name string
}

// Params is a definition's own generic parameter list plus a link to its
// parent definition's Params (nil at the root of the chain). It never
// mutates after construction: New (or Empty) builds the whole chain in
// one shot so Idx assignment only ever happens once.
type Params struct {
	parent *Params
	own    []Param
}

// Empty is the zero-parameter parameter list, used for Const and Static
// definitions which never introduce generics of their own and have no
// parent to inherit from either.
var Empty = &Params{}

// New builds a Params for a definition with the given parent (nil if this
// definition is not nested in a generic scope) and own parameter names in
// declaration order. Idx values are assigned starting right after the
// parent chain's last index.
func New(parent *Params, ownNames ...string) *Params {
	base := 0
	if parent != nil {
		base = parent.CountParamsIncludingParent()
	}
	own := make([]Param, len(ownNames))
	for i, name := range ownNames {
		own[i] = Param{Idx: base + i, Name: name}
	}
	return &Params{parent: parent, own: own}
}

// CountParentParams is the sum of every ancestor's own parameter count.
func (p *Params) CountParentParams() int {
	if p == nil || p.parent == nil {
		return 0
	}
	return p.parent.CountParamsIncludingParent()
}

// CountOwnParams is this definition's own parameter count, excluding
// anything inherited from a parent.
func (p *Params) CountOwnParams() int {
	if p == nil {
		return 0
	}
	return len(p.own)
}

// CountParamsIncludingParent is the full parameter count: every
// ancestor's parameters plus this definition's own. This is the value
// Substs.Len() must equal for any Ty keyed on this definition.
func (p *Params) CountParamsIncludingParent() int {
	return p.CountParentParams() + p.CountOwnParams()
}

// Own returns this definition's own parameters (not including parent
// parameters), in declaration order.
func (p *Params) Own() []Param {
	if p == nil {
		return nil
	}
	return p.own
}

// ParamsIncludingParent returns every parameter in the full
// parent-including list, ancestor-first, in the same order their Idx
// values occupy positions 0..N. This is exactly the order make_substs
// walks to build an identity Substs.
func (p *Params) ParamsIncludingParent() []Param {
	if p == nil {
		return nil
	}
	var out []Param
	if p.parent != nil {
		out = append(out, p.parent.ParamsIncludingParent()...)
	}
	out = append(out, p.own...)
	return out
}
