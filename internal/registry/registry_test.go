package registry

import (
	"testing"

	"github.com/vovakirdan/depthscraper/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Error("Exists() mismatch")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create() returned %q", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}

	if Title("zz_stub_b") != "Stub zz_stub_b" {
		t.Errorf("Title() = %q", Title("zz_stub_b"))
	}
	if Title("zz_missing") != "zz_missing" {
		t.Errorf("Title() of unknown id = %q", Title("zz_missing"))
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })
}
