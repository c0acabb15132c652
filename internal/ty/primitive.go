package ty

// UncertainIntTy is an integer type with possibly-unspecified width and
// signedness -- the `{integer}` literal placeholder as well as every
// concrete sized integer name.
type UncertainIntTy int

const (
	IntUnknown UncertainIntTy = iota
	IntI8
	IntI16
	IntI32
	IntI64
	IntI128
	IntIsize
	IntU8
	IntU16
	IntU32
	IntU64
	IntU128
	IntUsize
)

var intNames = map[string]UncertainIntTy{
	"i8":    IntI8,
	"i16":   IntI16,
	"i32":   IntI32,
	"i64":   IntI64,
	"i128":  IntI128,
	"isize": IntIsize,
	"u8":    IntU8,
	"u16":   IntU16,
	"u32":   IntU32,
	"u64":   IntU64,
	"u128":  IntU128,
	"usize": IntUsize,
}

var intStrings = func() map[UncertainIntTy]string {
	m := make(map[UncertainIntTy]string, len(intNames))
	for name, k := range intNames {
		m[k] = name
	}
	m[IntUnknown] = "{integer}"
	return m
}()

// UncertainIntTyFromName recognizes a single-identifier integer type
// name. It returns ok=false for anything else, including `{integer}`
// itself (which has no surface syntax -- it only ever arises internally).
func UncertainIntTyFromName(name string) (UncertainIntTy, bool) {
	k, ok := intNames[name]
	return k, ok
}

func (k UncertainIntTy) String() string { return intStrings[k] }

// UncertainFloatTy is a float type with possibly-unspecified width.
type UncertainFloatTy int

const (
	FloatUnknown UncertainFloatTy = iota
	FloatF32
	FloatF64
)

var floatNames = map[string]UncertainFloatTy{
	"f32": FloatF32,
	"f64": FloatF64,
}

var floatStrings = map[UncertainFloatTy]string{
	FloatUnknown: "{float}",
	FloatF32:     "f32",
	FloatF64:     "f64",
}

// UncertainFloatTyFromName recognizes a single-identifier float type name.
func UncertainFloatTyFromName(name string) (UncertainFloatTy, bool) {
	k, ok := floatNames[name]
	return k, ok
}

func (k UncertainFloatTy) String() string { return floatStrings[k] }
