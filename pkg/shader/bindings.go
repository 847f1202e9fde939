// Package shader generates vertex shader source for the two dialects
// the backend targets, and models the binding layer between the
// generated programs and the external rendering context. Source is
// produced at build time by substituting concrete attribute, varying
// and uniform names into a fixed set of template slots; all
// configuration errors surface here, never in the per-vertex path.
package shader

import (
	"fmt"

	"voxelview/pkg/vertexstage"
)

// Bindings holds the concrete name substituted into each template
// slot. The modern dialect uses every slot; the legacy dialect uses
// only the position, texture coordinate, transform and texture varying
// slots, and ignores the rest.
type Bindings struct {
	// Position is the vertex position attribute name.
	Position string `yaml:"position"`

	// TexCoord is the texture coordinate attribute name.
	TexCoord string `yaml:"texCoord"`

	// VoxelCoord is the voxel coordinate attribute name.
	VoxelCoord string `yaml:"voxelCoord,omitempty"`

	// Transform is the model-view-projection uniform name. In the
	// legacy dialect this names the four-row parameter array.
	Transform string `yaml:"transform"`

	// TexCoordVarying is the texture coordinate varying name.
	TexCoordVarying string `yaml:"texCoordVarying"`

	// VoxelCoordVarying is the voxel coordinate varying name.
	VoxelCoordVarying string `yaml:"voxelCoordVarying,omitempty"`

	// ColourVarying is the colour factor varying name.
	ColourVarying string `yaml:"colourVarying,omitempty"`
}

// DefaultBindings returns the conventional binding names for the given
// dialect. The legacy dialect addresses fixed attribute and result
// registers, so its defaults are register names rather than
// identifiers.
func DefaultBindings(dialect vertexstage.Dialect) Bindings {
	if dialect == vertexstage.DialectLegacy {
		return Bindings{
			Position:        "vertex.position",
			TexCoord:        "vertex.texcoord[0]",
			Transform:       "mvp",
			TexCoordVarying: "result.texcoord[0]",
		}
	}

	return Bindings{
		Position:          "vertex",
		TexCoord:          "texCoord",
		VoxelCoord:        "voxCoord",
		Transform:         "mvpMatrix",
		TexCoordVarying:   "fragTexCoord",
		VoxelCoordVarying: "fragVoxCoord",
		ColourVarying:     "fragColourFactor",
	}
}

// slotNames returns the slot/value pairs the dialect's template uses.
func (b Bindings) slotNames(dialect vertexstage.Dialect) map[string]string {
	slots := map[string]string{
		"position":        b.Position,
		"texCoord":        b.TexCoord,
		"transform":       b.Transform,
		"texCoordVarying": b.TexCoordVarying,
	}
	if dialect == vertexstage.DialectModern {
		slots["voxelCoord"] = b.VoxelCoord
		slots["voxelCoordVarying"] = b.VoxelCoordVarying
		slots["colourVarying"] = b.ColourVarying
	}
	return slots
}

// Validate checks that every slot the dialect's template uses has a
// name and that no two slots share one.
func (b Bindings) Validate(dialect vertexstage.Dialect) error {
	slots := b.slotNames(dialect)

	seen := make(map[string]string, len(slots))
	for slot, name := range slots {
		if name == "" {
			return fmt.Errorf("binding slot %q has no name for the %s dialect", slot, dialect)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("binding slots %q and %q share the name %q", other, slot, name)
		}
		seen[name] = slot
	}

	return nil
}
