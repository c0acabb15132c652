package ty

import "github.com/rust-type-core/hirty/internal/generics"

// Subst replaces every Param{idx} inside t by substs[idx] and recurses
// structurally, following the teacher's own central-switch substitution
// idiom (typesystem.ApplyWithCycleCheck): one function with one case per
// variant, rather than a method implementation scattered across each
// variant's file.
//
// Unlike ApplyWithCycleCheck, this does not need cycle detection: Substs
// entries are concrete types produced by lowering a use site, and a Param
// never appears inside its own substitution target by construction (the
// parent-first indexing scheme in internal/generics guarantees idx values
// are assigned once, from a closed parameter list, never self-referentially).
func Subst(t Ty, substs Substs) Ty {
	switch v := t.(type) {
	case tNever, tBool, tChar, tStr, tUnknown:
		return v

	case Int:
		return v
	case Float:
		return v

	case Tuple:
		elems := make([]Ty, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = Subst(e, substs)
		}
		return Tuple{Elems: elems}

	case Ref:
		return Ref{Inner: Subst(v.Inner, substs), Mut: v.Mut}

	case RawPtr:
		return RawPtr{Inner: Subst(v.Inner, substs), Mut: v.Mut}

	case Array:
		return Array{Elem: Subst(v.Elem, substs)}

	case Slice:
		return Slice{Elem: Subst(v.Elem, substs)}

	case FnPtr:
		params := make([]Ty, len(v.Sig.ParamsAndReturn))
		for i, p := range v.Sig.ParamsAndReturn {
			params[i] = Subst(p, substs)
		}
		return FnPtr{Sig: FnSig{ParamsAndReturn: params}}

	case FnDef:
		return FnDef{Def: v.Def, Substs: substChain(v.Substs, substs)}

	case Adt:
		return Adt{DefID: v.DefID, Substs: substChain(v.Substs, substs)}

	case Param:
		if v.Idx < 0 || v.Idx >= len(substs) {
			// A Param escaping its defining substs range with no
			// matching slot is an invariant breach upstream (spec.md §7
			// lists the closed set of fatal conditions; an
			// out-of-range Param is the same class of bug, just
			// surfaced here instead of at resolve time).
			panic("ty: Param.Idx out of range during Subst")
		}
		return substs[v.Idx]

	default:
		panic("ty: Subst: unhandled Ty variant")
	}
}

// substChain applies substs to every element of inner. This is how a
// nested Adt/FnDef's own Substs get the outer substitution threaded
// through them, e.g. substituting into Option<T> where T is itself a
// Param bound one level up.
func substChain(inner Substs, substs Substs) Substs {
	out := make(Substs, len(inner))
	for i, t := range inner {
		out[i] = Subst(t, substs)
	}
	return out
}

// IdentitySubsts builds the Substs `[Param{0}, Param{1}, ..., Param{n-1}]`
// for the given full parent-including parameter list. Substituting it
// into any Ty is a no-op (spec.md invariant 2: "substitution is
// idempotent when applied with substs[i] = Param{i}").
func IdentitySubsts(params []generics.Param) Substs {
	out := make(Substs, len(params))
	for i, p := range params {
		out[i] = Param{Idx: i, Name: p.Name}
	}
	return out
}
