// Package ty implements the closed sum of type constructors (spec.md C1,
// §3): every value represents one fully lowered type. The variant set is
// sealed the way the teacher seals typesystem.Type: one interface plus
// one concrete struct per variant (TVar, TCon, TApp, ... there; Never,
// Bool, Int, Adt, Param, Unknown, ... here), switched over exhaustively
// by every consumer instead of opened via subclassing.
package ty

import (
	"fmt"
	"strings"

	"github.com/rust-type-core/hirty/internal/config"
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/hir"
)

// Ty is any fully lowered type.
type Ty interface {
	String() string
	tyNode()
}

// Substs is an ordered vector of Ty, one per generic parameter in the
// full parent-including range of some definition (spec.md invariant 1).
type Substs []Ty

// Len is the number of parameters this Substs was built for.
func (s Substs) Len() int { return len(s) }

// At returns the type substituted for parameter idx. Calling it with an
// out-of-range idx is an invariant violation in the caller (Param.Idx
// must always be < len(substs) once fully lowered) and panics.
func (s Substs) At(idx int) Ty {
	if idx < 0 || idx >= len(s) {
		panic(fmt.Sprintf("ty: substs index %d out of range (len %d)", idx, len(s)))
	}
	return s[idx]
}

func (s Substs) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// --- variants ---

type tNever struct{}

func (tNever) tyNode()        {}
func (tNever) String() string { return "!" }

// Never is the uninhabited type.
var Never Ty = tNever{}

type tBool struct{}

func (tBool) tyNode()        {}
func (tBool) String() string { return "bool" }

// Bool is the boolean type.
var Bool Ty = tBool{}

type tChar struct{}

func (tChar) tyNode()        {}
func (tChar) String() string { return "char" }

// Char is the character type.
var Char Ty = tChar{}

type tStr struct{}

func (tStr) tyNode()        {}
func (tStr) String() string { return "str" }

// Str is the string-slice type.
var Str Ty = tStr{}

// Int is an integer type, possibly with unspecified width/signedness.
type Int struct {
	Kind UncertainIntTy
}

func (Int) tyNode()          {}
func (t Int) String() string { return t.Kind.String() }

// Float is a float type, possibly with unspecified width.
type Float struct {
	Kind UncertainFloatTy
}

func (Float) tyNode()          {}
func (t Float) String() string { return t.Kind.String() }

// Tuple is a fixed-arity ordered sequence of types.
type Tuple struct {
	Elems []Ty
}

func (Tuple) tyNode() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Ref is `&T` / `&mut T`.
type Ref struct {
	Inner Ty
	Mut   hir.Mutability
}

func (Ref) tyNode() {}
func (t Ref) String() string {
	if t.Mut == hir.Mut {
		return "&mut " + t.Inner.String()
	}
	return "&" + t.Inner.String()
}

// RawPtr is `*const T` / `*mut T`.
type RawPtr struct {
	Inner Ty
	Mut   hir.Mutability
}

func (RawPtr) tyNode() {}
func (t RawPtr) String() string {
	if t.Mut == hir.Mut {
		return "*mut " + t.Inner.String()
	}
	return "*const " + t.Inner.String()
}

// Array is `[T; N]` with the length erased.
type Array struct {
	Elem Ty
}

func (Array) tyNode()          {}
func (t Array) String() string { return "[" + t.Elem.String() + "]" }

// Slice is `[T]`.
type Slice struct {
	Elem Ty
}

func (Slice) tyNode()          {}
func (t Slice) String() string { return "[" + t.Elem.String() + "]" }

// FnSig is a callable signature: an ordered sequence whose last element
// is the return type.
type FnSig struct {
	ParamsAndReturn []Ty
}

// FromParamsAndReturn builds a FnSig from separate parameter types and a
// return type.
func FromParamsAndReturn(params []Ty, ret Ty) FnSig {
	all := make([]Ty, 0, len(params)+1)
	all = append(all, params...)
	all = append(all, ret)
	return FnSig{ParamsAndReturn: all}
}

// Params returns the parameter types, excluding the trailing return type.
func (s FnSig) Params() []Ty {
	if len(s.ParamsAndReturn) == 0 {
		return nil
	}
	return s.ParamsAndReturn[:len(s.ParamsAndReturn)-1]
}

// Ret returns the return type.
func (s FnSig) Ret() Ty {
	return s.ParamsAndReturn[len(s.ParamsAndReturn)-1]
}

func (s FnSig) String() string {
	parts := make([]string, len(s.Params()))
	for i, p := range s.Params() {
		parts[i] = p.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + s.Ret().String()
}

// FnPtr is a bare function pointer type.
type FnPtr struct {
	Sig FnSig
}

func (FnPtr) tyNode()          {}
func (t FnPtr) String() string { return t.Sig.String() }

// FnDef is the zero-sized item type of a named function or tuple
// constructor (struct / enum-variant), after parameter substitution.
type FnDef struct {
	Def    defs.CallableDef
	Substs Substs
}

func (FnDef) tyNode() {}
func (t FnDef) String() string {
	if config.IsTestMode {
		return fmt.Sprintf("fn-item[?]%s", t.Substs)
	}
	return fmt.Sprintf("fn-item[%s]%s", t.Def.ID, t.Substs)
}

// Adt is a struct/enum applied to type arguments.
type Adt struct {
	DefID  defs.AdtDef
	Substs Substs
}

func (Adt) tyNode() {}
func (t Adt) String() string {
	if config.IsTestMode {
		return fmt.Sprintf("adt[?]%s", t.Substs)
	}
	return fmt.Sprintf("adt[%s]%s", t.DefID.ID, t.Substs)
}

// Param is a bound generic parameter, identified by its position in the
// full parent-including parameter list. Name is carried for diagnostics
// only and is not part of Param's identity (two Params with the same Idx
// but different Name still refer to the same parameter).
type Param struct {
	Idx  int
	Name string
}

func (Param) tyNode()          {}
func (t Param) String() string { return t.Name }

type tUnknown struct{}

func (tUnknown) tyNode()        {}
func (tUnknown) String() string { return "{unknown}" }

// Unknown is the error/placeholder type. It propagates without further
// diagnosis: any component of a constructor may be Unknown, and
// Unknown.Subst(_) == Unknown.
var Unknown Ty = tUnknown{}
