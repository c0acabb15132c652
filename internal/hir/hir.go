// Package hir models the slice of the syntactic High-level IR that this
// module's semantic core consumes: type references and paths. Parsing,
// item-level name resolution and crate-graph assembly are the caller's
// job (spec.md §1); this package only carries their *output* shapes.
//
// TypeRef mirrors the teacher's own closed-sum-as-interface idiom
// (internal/ast.Type in funvibe-funxy: an interface plus one concrete
// struct per variant, switched over by consumers) rather than a single
// tagged struct, so that adding a variant is a compile error at every
// switch site that doesn't handle it.
package hir

// Mutability distinguishes &T from &mut T, and *const T from *mut T.
type Mutability int

const (
	Shared Mutability = iota
	Mut
)

func (m Mutability) String() string {
	if m == Mut {
		return "mut"
	}
	return "shared"
}

// TypeRef is the closed sum of syntactic type references that Ty.FromHir
// lowers. Every concrete variant below implements it via an unexported
// marker method, exactly the way ast.Type's typeNode() marker works in
// the teacher.
type TypeRef interface {
	typeRefNode()
}

// Never is `!`.
type Never struct{}

func (Never) typeRefNode() {}

// Placeholder is `_`, a type the author left for inference to fill in.
type Placeholder struct{}

func (Placeholder) typeRefNode() {}

// Error stands for a type reference that failed to parse or resolve
// further upstream; it behaves identically to Placeholder in this core
// (both lower to Ty.Unknown) but is kept distinct so a caller can tell
// "the user wrote `_`" apart from "something upstream already failed".
type Error struct{}

func (Error) typeRefNode() {}

// Tuple is `(T1, T2, ...)`.
type Tuple struct {
	Elems []TypeRef
}

func (Tuple) typeRefNode() {}

// Reference is `&T` / `&mut T`.
type Reference struct {
	Inner TypeRef
	Mut   Mutability
}

func (Reference) typeRefNode() {}

// RawPtr is `*const T` / `*mut T`.
type RawPtr struct {
	Inner TypeRef
	Mut   Mutability
}

func (RawPtr) typeRefNode() {}

// Array is `[T; N]` with the length erased -- not a goal for this core.
type Array struct {
	Elem TypeRef
}

func (Array) typeRefNode() {}

// Slice is `[T]`.
type Slice struct {
	Elem TypeRef
}

func (Slice) typeRefNode() {}

// Fn is a bare function pointer type `fn(T1, T2) -> R`. ParamsAndReturn
// holds parameter types followed by the return type, matching FnSig's own
// layout so lowering is a direct element-wise map.
type Fn struct {
	ParamsAndReturn []TypeRef
}

func (Fn) typeRefNode() {}

// Path is a (possibly multi-segment) path used as a type, e.g. `u32`,
// `Vec<T>`, `Option::<i32>::None`, or `Self`.
type Path struct {
	TypeRef
	Segments []PathSegment
}

func (*Path) typeRefNode() {}

// NewPath builds a Path from segment names with no generic args, a
// convenience for tests and callers that only need simple identifiers.
func NewPath(segments ...string) *Path {
	ps := make([]PathSegment, len(segments))
	for i, s := range segments {
		ps[i] = PathSegment{Name: s}
	}
	return &Path{Segments: ps}
}

// SingleIdent returns the path's name when it has exactly one segment,
// and ok=false otherwise. Generic arguments on that segment are not
// inspected: `Box<bool>` yields "Box". This backs the
// primitive-name shortcut and the GenericParam-resolution precondition in
// Ty.FromHirPath.
func (p *Path) SingleIdent() (string, bool) {
	if len(p.Segments) != 1 {
		return "", false
	}
	return p.Segments[0].Name, true
}

// PathSegment is one `::`-separated component of a Path, optionally
// carrying explicit generic arguments (`Vec<T>`'s `<T>`, say).
type PathSegment struct {
	Name            string
	ArgsAndBindings *GenericArgs
}

// HasArgs reports whether this segment carries any explicit generic
// arguments at all (as opposed to ArgsAndBindings being nil).
func (s PathSegment) HasArgs() bool {
	return s.ArgsAndBindings != nil && len(s.ArgsAndBindings.Args) > 0
}

// GenericArgs is the `<...>` suffix of a path segment.
type GenericArgs struct {
	Args []GenericArg
}

// GenericArg is one argument inside a `<...>` list. The source language
// models lifetime and associated-type-binding arguments too, but this
// core only ever needs the type-argument variant (GenericArg::Type in the
// original), so that's the only one represented.
type GenericArg struct {
	Type TypeRef
}
