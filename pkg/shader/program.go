package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelview/pkg/vertexstage"
)

// Program is the binding layer between a generated vertex source and
// the external rendering context. It holds the expanded source plus a
// store of named uniform values; assignments are change-tracked so the
// caller can skip redundant uploads. Per-vertex execution never goes
// through a Program: once the transform uniform is set, Stage hands
// back the pure transform stage for the current draw call.
type Program struct {
	dialect  vertexstage.Dialect
	bindings Bindings
	source   string
	uniforms map[string]interface{}
	declared map[string]bool
}

// NewProgram generates the dialect's vertex source and prepares the
// uniform store. The transform uniform is always declared; extra
// uniform names may be declared for values the surrounding fragment
// program consumes through the same store.
func NewProgram(dialect vertexstage.Dialect, bindings Bindings, extraUniforms ...string) (*Program, error) {
	source, err := Generate(dialect, bindings)
	if err != nil {
		return nil, err
	}

	declared := map[string]bool{bindings.Transform: true}
	for _, name := range extraUniforms {
		if name == "" {
			return nil, fmt.Errorf("extra uniform with empty name")
		}
		if declared[name] {
			return nil, fmt.Errorf("uniform %q declared twice", name)
		}
		declared[name] = true
	}

	return &Program{
		dialect:  dialect,
		bindings: bindings,
		source:   source,
		uniforms: make(map[string]interface{}),
		declared: declared,
	}, nil
}

// Dialect reports which dialect the program was generated for.
func (p *Program) Dialect() vertexstage.Dialect { return p.dialect }

// Source returns the generated vertex source text.
func (p *Program) Source() string { return p.source }

// Bindings returns the binding names the source was generated with.
func (p *Program) Bindings() Bindings { return p.bindings }

// Set stores a uniform value and reports whether it changed since the
// previous assignment, so callers can batch state updates and only
// upload what moved. Setting an undeclared name, or a value of a kind
// the store cannot hold, is a configuration error.
func (p *Program) Set(name string, value interface{}) (bool, error) {
	if !p.declared[name] {
		return false, fmt.Errorf("uniform %q is not declared by this program", name)
	}

	switch value.(type) {
	case bool, int, float32, float64, mgl32.Vec3, mgl32.Vec4, mgl32.Mat4, [4]mgl32.Vec4:
	default:
		return false, fmt.Errorf("uniform %q: unsupported value type %T", name, value)
	}

	previous, ok := p.uniforms[name]
	p.uniforms[name] = value

	return !ok || previous != value, nil
}

// TransformMatrix returns the current transform uniform as a 4x4
// matrix. The legacy dialect's row-vector form is recomposed.
func (p *Program) TransformMatrix() (mgl32.Mat4, error) {
	value, ok := p.uniforms[p.bindings.Transform]
	if !ok {
		return mgl32.Mat4{}, fmt.Errorf("transform uniform %q has not been set", p.bindings.Transform)
	}

	switch t := value.(type) {
	case mgl32.Mat4:
		return t, nil
	case [4]mgl32.Vec4:
		var m mgl32.Mat4
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				m[col*4+row] = t[row][col]
			}
		}
		return m, nil
	default:
		return mgl32.Mat4{}, fmt.Errorf("transform uniform %q holds %T, expected a matrix or row vectors",
			p.bindings.Transform, value)
	}
}

// Stage returns the per-vertex transform stage for the current draw
// call, bound to the transform uniform's current value.
func (p *Program) Stage() (vertexstage.Stage, error) {
	transform, err := p.TransformMatrix()
	if err != nil {
		return nil, err
	}

	if p.dialect == vertexstage.DialectLegacy {
		return vertexstage.NewLegacy(transform), nil
	}
	return vertexstage.NewModern(transform), nil
}
