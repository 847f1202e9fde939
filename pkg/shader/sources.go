package shader

import (
	"fmt"
	"strings"
	"text/template"

	"voxelview/pkg/vertexstage"
)

// legacyVertexTemplate is the vertex program for execution environments
// whose instruction set lacks a matrix-vector multiply: the transform
// arrives as four row vectors, and the clip-space position is built
// from four explicit dot products. The texture coordinate is widened to
// four components with w forced to 1 before being handed on.
const legacyVertexTemplate = `!!ARBvp1.0

# Transforms the vertex position into clip coordinates, and passes
# the texture coordinate through to the fragment program with its
# fourth component set to 1.

PARAM {{ .Transform }}[4] = { program.local[0..3] };

TEMP texCoord;

DP4 result.position.x, {{ .Transform }}[0], {{ .Position }};
DP4 result.position.y, {{ .Transform }}[1], {{ .Position }};
DP4 result.position.z, {{ .Transform }}[2], {{ .Position }};
DP4 result.position.w, {{ .Transform }}[3], {{ .Position }};

MOV texCoord,   {{ .TexCoord }};
MOV texCoord.w, 1;

MOV {{ .TexCoordVarying }}, texCoord;

END
`

// modernVertexTemplate is the equivalent vertex shader for dialects
// with a native mat4 multiply. The voxel and texture coordinates pass
// through untouched, and a constant opaque-white colour factor is
// emitted for the fragment stage.
const modernVertexTemplate = `#version 120

uniform mat4 {{ .Transform }};

attribute vec3 {{ .Position }};
attribute vec3 {{ .TexCoord }};
attribute vec3 {{ .VoxelCoord }};

varying vec3 {{ .TexCoordVarying }};
varying vec3 {{ .VoxelCoordVarying }};
varying vec4 {{ .ColourVarying }};

void main(void) {

  {{ .VoxelCoordVarying }} = {{ .VoxelCoord }};
  {{ .TexCoordVarying }}   = {{ .TexCoord }};
  {{ .ColourVarying }}     = vec4(1.0, 1.0, 1.0, 1.0);

  gl_Position = {{ .Transform }} * vec4({{ .Position }}, 1.0);
}
`

// FileName returns the conventional output filename for a dialect's
// generated vertex source.
func FileName(dialect vertexstage.Dialect) string {
	if dialect == vertexstage.DialectLegacy {
		return "volume_vert.prog"
	}
	return "volume_vert.glsl"
}

// Generate expands the dialect's vertex source template with the given
// binding names. Unbound or colliding slots are reported as errors
// before any expansion happens.
func Generate(dialect vertexstage.Dialect, bindings Bindings) (string, error) {
	if err := bindings.Validate(dialect); err != nil {
		return "", fmt.Errorf("invalid bindings: %w", err)
	}

	var src string
	switch dialect {
	case vertexstage.DialectLegacy:
		src = legacyVertexTemplate
	case vertexstage.DialectModern:
		src = modernVertexTemplate
	default:
		return "", fmt.Errorf("unknown dialect %d", dialect)
	}

	tmpl, err := template.New(dialect.String()).Parse(src)
	if err != nil {
		return "", fmt.Errorf("error parsing %s vertex template: %w", dialect, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, bindings); err != nil {
		return "", fmt.Errorf("error expanding %s vertex template: %w", dialect, err)
	}

	return out.String(), nil
}
