package ids_test

import (
	"testing"

	"github.com/rust-type-core/hirty/internal/ids"
)

func TestDefIDParseRoundTrip(t *testing.T) {
	original := ids.NewDefID()
	parsed, err := ids.ParseDefID(original.String())
	if err != nil {
		t.Fatalf("ParseDefID: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDefID(String()) = %v, want %v", parsed, original)
	}
}

func TestParseDefIDRejectsGarbage(t *testing.T) {
	if _, err := ids.ParseDefID("not-a-uuid"); err == nil {
		t.Errorf("ParseDefID should reject a malformed string")
	}
}

func TestCrateModuleImplTraitRoundTrip(t *testing.T) {
	crate := ids.NewCrateID()
	if got, err := ids.ParseCrateID(crate.String()); err != nil || got != crate {
		t.Errorf("CrateID round trip failed: got=%v err=%v", got, err)
	}

	module := ids.NewModuleID()
	if got, err := ids.ParseModuleID(module.String()); err != nil || got != module {
		t.Errorf("ModuleID round trip failed: got=%v err=%v", got, err)
	}

	impl := ids.NewImplID()
	if got, err := ids.ParseImplID(impl.String()); err != nil || got != impl {
		t.Errorf("ImplID round trip failed: got=%v err=%v", got, err)
	}

	trait := ids.NewTraitID()
	if got, err := ids.ParseTraitID(trait.String()); err != nil || got != trait {
		t.Errorf("TraitID round trip failed: got=%v err=%v", got, err)
	}
}

func TestDistinctIDsAreUnique(t *testing.T) {
	a, b := ids.NewDefID(), ids.NewDefID()
	if a == b {
		t.Errorf("two freshly minted DefIDs collided")
	}
}
