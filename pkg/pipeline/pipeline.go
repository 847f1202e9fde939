// Package pipeline executes a vertex transform stage over whole vertex
// buffers and verifies that the two dialect variants agree. It plays
// the role of the execution environment: stages themselves are pure
// per-vertex functions with no knowledge of scheduling.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat"

	"voxelview/internal/models"
	"voxelview/pkg/vertexstage"
)

// Runner executes a stage over a vertex buffer in parallel. Because
// invocations are independent and share no mutable state, the buffer
// is simply split into contiguous ranges, one per worker.
type Runner struct {
	// numCores is how many workers process a buffer concurrently.
	numCores int
}

// NewRunner creates a runner using the given number of cores. Values
// below 1 fall back to the machine's core count.
func NewRunner(numCores int) *Runner {
	if numCores < 1 {
		numCores = runtime.NumCPU()
	}
	return &Runner{numCores: numCores}
}

// Run transforms every vertex in the buffer. Output order matches
// input order regardless of how the work is split.
func (r *Runner) Run(stage vertexstage.Stage, attrs []models.VertexAttributes) []models.Varyings {
	out := make([]models.Varyings, len(attrs))
	if len(attrs) == 0 {
		return out
	}

	numCores := r.numCores
	if numCores > len(attrs) {
		numCores = len(attrs)
	}
	chunkSize := (len(attrs) + numCores - 1) / numCores

	var wg sync.WaitGroup
	for core := 0; core < numCores; core++ {
		start := core * chunkSize
		end := start + chunkSize
		if end > len(attrs) {
			end = len(attrs)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				stage.Transform(&attrs[i], &out[i])
			}
		}(start, end)
	}
	wg.Wait()

	return out
}

// EquivalenceReport summarizes a verification sweep comparing the
// legacy and modern stages over the same inputs.
type EquivalenceReport struct {
	// Comparisons is the number of transform/vertex pairs checked.
	Comparisons int

	// MaxDeviation is the largest absolute clip-space component
	// difference observed between the two variants.
	MaxDeviation float64

	// MeanDeviation is the mean absolute clip-space component
	// difference across all comparisons.
	MeanDeviation float64
}

// VerifyEquivalence runs both stage variants over the cross product of
// the given transforms and vertices and checks every contract the
// stage makes: clip-space agreement within tolerance, exact coordinate
// passthrough, the legacy w fixup, the constant colour factor, and the
// legacy variant leaving its undeclared varyings zero. Each variant is
// executed through the runner, so the sweep exercises the same
// parallel split as a real draw.
func (r *Runner) VerifyEquivalence(transforms []mgl32.Mat4, attrs []models.VertexAttributes, tolerance float32) (*EquivalenceReport, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %g", tolerance)
	}

	deviations := make([]float64, 0, len(transforms)*len(attrs))
	report := &EquivalenceReport{}

	for mi, m := range transforms {
		legacyOuts := r.Run(vertexstage.NewLegacy(m), attrs)
		modernOuts := r.Run(vertexstage.NewModern(m), attrs)

		for ai := range attrs {
			in := &attrs[ai]
			legacyOut := &legacyOuts[ai]
			modernOut := &modernOuts[ai]

			var worst float32
			for c := 0; c < 4; c++ {
				diff := math32.Abs(legacyOut.ClipPosition[c] - modernOut.ClipPosition[c])
				if diff > worst {
					worst = diff
				}
			}

			if worst > tolerance {
				return nil, fmt.Errorf(
					"transform %d, vertex %d: clip positions differ by %g (legacy %v, modern %v)",
					mi, ai, worst, legacyOut.ClipPosition, modernOut.ClipPosition)
			}

			for c := 0; c < 3; c++ {
				if legacyOut.TexCoord[c] != in.TexCoord[c] || modernOut.TexCoord[c] != in.TexCoord[c] {
					return nil, fmt.Errorf(
						"transform %d, vertex %d: texture coordinate not passed through exactly", mi, ai)
				}
			}

			if legacyOut.TexCoord.W() != 1 {
				return nil, fmt.Errorf(
					"transform %d, vertex %d: legacy texture coordinate w is %g, expected 1",
					mi, ai, legacyOut.TexCoord.W())
			}

			if legacyOut.VoxelCoord != (mgl32.Vec3{}) || legacyOut.Colour != (mgl32.Vec4{}) {
				return nil, fmt.Errorf(
					"transform %d, vertex %d: legacy stage emitted undeclared varyings (voxel %v, colour %v)",
					mi, ai, legacyOut.VoxelCoord, legacyOut.Colour)
			}

			if modernOut.VoxelCoord != in.VoxelCoord {
				return nil, fmt.Errorf(
					"transform %d, vertex %d: voxel coordinate not passed through exactly", mi, ai)
			}

			if modernOut.Colour != (mgl32.Vec4{1, 1, 1, 1}) {
				return nil, fmt.Errorf(
					"transform %d, vertex %d: colour factor is %v, expected opaque white",
					mi, ai, modernOut.Colour)
			}

			deviations = append(deviations, float64(worst))
			if float64(worst) > report.MaxDeviation {
				report.MaxDeviation = float64(worst)
			}
		}
	}

	report.Comparisons = len(deviations)
	if len(deviations) > 0 {
		report.MeanDeviation = stat.Mean(deviations, nil)
	}

	return report, nil
}
