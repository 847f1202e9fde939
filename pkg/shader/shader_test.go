package shader

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelview/pkg/vertexstage"
)

// TestGenerateModern verifies that every binding name appears in the
// generated modern source and that no template slot is left behind.
func TestGenerateModern(t *testing.T) {
	bindings := DefaultBindings(vertexstage.DialectModern)

	src, err := Generate(vertexstage.DialectModern, bindings)
	if err != nil {
		t.Fatalf("Failed to generate modern source: %v", err)
	}

	for _, name := range []string{
		bindings.Position,
		bindings.TexCoord,
		bindings.VoxelCoord,
		bindings.Transform,
		bindings.TexCoordVarying,
		bindings.VoxelCoordVarying,
		bindings.ColourVarying,
	} {
		if !strings.Contains(src, name) {
			t.Errorf("Expected generated source to contain binding name %q", name)
		}
	}

	if strings.Contains(src, "{{") || strings.Contains(src, "}}") {
		t.Error("Generated source contains unexpanded template slots")
	}

	if !strings.HasPrefix(src, "#version 120") {
		t.Error("Expected modern source to start with a #version directive")
	}

	if !strings.Contains(src, "vec4(1.0, 1.0, 1.0, 1.0)") {
		t.Error("Expected modern source to emit the constant colour factor")
	}
}

// TestGenerateLegacy verifies the legacy program structure: four dot
// products and the texture coordinate w fixup.
func TestGenerateLegacy(t *testing.T) {
	bindings := DefaultBindings(vertexstage.DialectLegacy)

	src, err := Generate(vertexstage.DialectLegacy, bindings)
	if err != nil {
		t.Fatalf("Failed to generate legacy source: %v", err)
	}

	if !strings.HasPrefix(src, "!!ARBvp1.0") {
		t.Error("Expected legacy source to start with the program header")
	}

	if count := strings.Count(src, "DP4"); count != 4 {
		t.Errorf("Expected 4 dot product instructions, got %d", count)
	}

	if !strings.Contains(src, "MOV texCoord.w, 1;") {
		t.Error("Expected legacy source to force the texture coordinate w component to 1")
	}

	if strings.Contains(src, "{{") || strings.Contains(src, "}}") {
		t.Error("Generated source contains unexpanded template slots")
	}
}

// TestGenerateUnboundSlot verifies that a missing binding name is a
// generation-time error.
func TestGenerateUnboundSlot(t *testing.T) {
	bindings := DefaultBindings(vertexstage.DialectModern)
	bindings.ColourVarying = ""

	if _, err := Generate(vertexstage.DialectModern, bindings); err == nil {
		t.Error("Expected error for unbound slot, got nil")
	}

	// The legacy template does not use the colour slot, so the same
	// bindings must generate cleanly there.
	if _, err := Generate(vertexstage.DialectLegacy, bindings); err != nil {
		t.Errorf("Expected legacy generation to ignore unused slots, got %v", err)
	}
}

// TestGenerateDuplicateNames verifies that two slots sharing a name is
// a generation-time error.
func TestGenerateDuplicateNames(t *testing.T) {
	bindings := DefaultBindings(vertexstage.DialectModern)
	bindings.TexCoordVarying = bindings.VoxelCoordVarying

	if _, err := Generate(vertexstage.DialectModern, bindings); err == nil {
		t.Error("Expected error for duplicate binding names, got nil")
	}
}

// TestProgramSet verifies uniform change tracking and undeclared-name
// rejection.
func TestProgramSet(t *testing.T) {
	prog, err := NewProgram(vertexstage.DialectModern,
		DefaultBindings(vertexstage.DialectModern), "clipLow", "clipHigh")
	if err != nil {
		t.Fatalf("Failed to create program: %v", err)
	}

	changed, err := prog.Set("clipLow", float32(0.25))
	if err != nil {
		t.Fatalf("Failed to set uniform: %v", err)
	}
	if !changed {
		t.Error("Expected first assignment to report a change")
	}

	changed, err = prog.Set("clipLow", float32(0.25))
	if err != nil {
		t.Fatalf("Failed to set uniform: %v", err)
	}
	if changed {
		t.Error("Expected repeated assignment of the same value to report no change")
	}

	changed, err = prog.Set("clipLow", float32(0.75))
	if err != nil {
		t.Fatalf("Failed to set uniform: %v", err)
	}
	if !changed {
		t.Error("Expected assignment of a new value to report a change")
	}

	if _, err := prog.Set("noSuchUniform", float32(1)); err == nil {
		t.Error("Expected error for undeclared uniform, got nil")
	}

	if _, err := prog.Set("clipHigh", []float32{1, 2}); err == nil {
		t.Error("Expected error for unsupported value type, got nil")
	}
}

// TestProgramStage verifies that the transform uniform round-trips into
// a working stage for both dialects, including the legacy row form.
func TestProgramStage(t *testing.T) {
	transform := mgl32.Translate3D(2, 4, 6)

	modern, err := NewProgram(vertexstage.DialectModern, DefaultBindings(vertexstage.DialectModern))
	if err != nil {
		t.Fatalf("Failed to create modern program: %v", err)
	}

	// Reading the transform before it is set is a configuration error.
	if _, err := modern.Stage(); err == nil {
		t.Error("Expected error for unset transform uniform, got nil")
	}

	if _, err := modern.Set(modern.Bindings().Transform, transform); err != nil {
		t.Fatalf("Failed to set transform: %v", err)
	}

	got, err := modern.TransformMatrix()
	if err != nil {
		t.Fatalf("Failed to read transform: %v", err)
	}
	if got != transform {
		t.Errorf("Expected transform %v, got %v", transform, got)
	}

	legacy, err := NewProgram(vertexstage.DialectLegacy, DefaultBindings(vertexstage.DialectLegacy))
	if err != nil {
		t.Fatalf("Failed to create legacy program: %v", err)
	}

	rows := [4]mgl32.Vec4{transform.Row(0), transform.Row(1), transform.Row(2), transform.Row(3)}
	if _, err := legacy.Set(legacy.Bindings().Transform, rows); err != nil {
		t.Fatalf("Failed to set transform rows: %v", err)
	}

	got, err = legacy.TransformMatrix()
	if err != nil {
		t.Fatalf("Failed to read recomposed transform: %v", err)
	}
	if got != transform {
		t.Errorf("Expected recomposed transform %v, got %v", transform, got)
	}

	stage, err := legacy.Stage()
	if err != nil {
		t.Fatalf("Failed to build stage: %v", err)
	}
	if stage.Dialect() != vertexstage.DialectLegacy {
		t.Errorf("Expected legacy stage, got %s", stage.Dialect())
	}
}

// TestFileNames verifies the conventional output filenames.
func TestFileNames(t *testing.T) {
	if name := FileName(vertexstage.DialectLegacy); name != "volume_vert.prog" {
		t.Errorf("Expected volume_vert.prog, got %s", name)
	}
	if name := FileName(vertexstage.DialectModern); name != "volume_vert.glsl" {
		t.Errorf("Expected volume_vert.glsl, got %s", name)
	}
}
