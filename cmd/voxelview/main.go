package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/schollz/progressbar/v3"

	"voxelview/internal/models"
	"voxelview/pkg/config"
	"voxelview/pkg/geometry"
	"voxelview/pkg/pipeline"
	"voxelview/pkg/shader"
	"voxelview/pkg/vertexstage"
	"voxelview/pkg/xform"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "voxelview.yaml", "Path to YAML configuration file")
	outDir := flag.String("out", "", "Output directory for generated shader sources (overrides config)")
	verify := flag.Bool("verify", true, "Run the variant equivalence verification sweep")
	numCores := flag.Int("cores", 0, "Number of CPU cores to use (overrides config)")
	seed := flag.Int64("seed", 1, "Seed for the verification sample generator")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *outDir != "" {
		cfg.Output.ShaderDir = *outDir
	}
	if *numCores > 0 {
		cfg.Processing.NumCores = *numCores
	}

	fmt.Println("================================")
	fmt.Println("VOXELVIEW VERTEX STAGE GENERATOR")
	fmt.Println("================================")

	// Generate and write the vertex sources for both dialects
	if err := os.MkdirAll(cfg.Output.ShaderDir, 0755); err != nil {
		log.Fatalf("Failed to create shader output directory: %v", err)
	}

	dialects := []struct {
		dialect  vertexstage.Dialect
		bindings shader.Bindings
	}{
		{vertexstage.DialectLegacy, cfg.LegacyBindings},
		{vertexstage.DialectModern, cfg.Bindings},
	}

	for _, d := range dialects {
		src, err := shader.Generate(d.dialect, d.bindings)
		if err != nil {
			log.Fatalf("Failed to generate %s vertex source: %v", d.dialect, err)
		}

		path := filepath.Join(cfg.Output.ShaderDir, shader.FileName(d.dialect))
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			log.Fatalf("Failed to write %s vertex source: %v", d.dialect, err)
		}

		if cfg.Output.Verbose {
			fmt.Printf("Wrote %s vertex source to: %s\n", d.dialect, path)
		}
	}

	if !*verify {
		return
	}

	// Run the verification sweep comparing both variants
	fmt.Println("\nVerifying variant equivalence...")
	startTime := time.Now()

	rng := rand.New(rand.NewSource(*seed))
	vol := models.NewVolume(64, 64, 32)
	attrs := sampleVertices(rng, cfg.Processing.SampleVertices, vol)
	transforms := sampleTransforms(rng, cfg.Processing.SampleTransforms, vol)

	runner := pipeline.NewRunner(cfg.Processing.NumCores)
	bar := progressbar.Default(int64(len(transforms)))

	total := &pipeline.EquivalenceReport{}
	var meanSum float64

	for _, m := range transforms {
		report, err := runner.VerifyEquivalence(
			[]mgl32.Mat4{m}, attrs, cfg.Processing.Tolerance)
		if err != nil {
			log.Fatalf("Verification failed: %v", err)
		}

		total.Comparisons += report.Comparisons
		if report.MaxDeviation > total.MaxDeviation {
			total.MaxDeviation = report.MaxDeviation
		}
		meanSum += report.MeanDeviation

		if err := bar.Add(1); err != nil {
			log.Printf("Warning: progress bar error: %v", err)
		}
	}
	if len(transforms) > 0 {
		total.MeanDeviation = meanSum / float64(len(transforms))
	}

	fmt.Printf("\nVerification completed in %.2f seconds\n", time.Since(startTime).Seconds())
	fmt.Printf("\nEquivalence report:\n")
	fmt.Printf("===================\n")
	fmt.Printf("Comparisons:    %d\n", total.Comparisons)
	fmt.Printf("Max deviation:  %.3g\n", total.MaxDeviation)
	fmt.Printf("Mean deviation: %.3g\n", total.MeanDeviation)
	fmt.Printf("Tolerance:      %.3g\n", cfg.Processing.Tolerance)
	fmt.Printf("Cores used:     %d\n", cfg.Processing.NumCores)
}

// sampleVertices builds the verification vertex set: slice geometry
// through the reference volume plus uniformly random vertices.
func sampleVertices(rng *rand.Rand, count int, vol *models.Volume) []models.VertexAttributes {
	attrs, err := geometry.SliceSequence(vol, "z")
	if err != nil {
		log.Fatalf("Failed to build slice geometry: %v", err)
	}

	for len(attrs) < count {
		attrs = append(attrs, models.VertexAttributes{
			Position: mgl32.Vec3{
				float32(rng.Float64()*200 - 100),
				float32(rng.Float64()*200 - 100),
				float32(rng.Float64()*200 - 100),
			},
			TexCoord: mgl32.Vec3{
				float32(rng.Float64()),
				float32(rng.Float64()),
				float32(rng.Float64()),
			},
			VoxelCoord: mgl32.Vec3{
				float32(rng.Intn(vol.Width)),
				float32(rng.Intn(vol.Height)),
				float32(rng.Intn(vol.Depth)),
			},
		})
	}

	return attrs
}

// sampleTransforms builds the verification transform set: identity,
// the reference volume's projection chain, and dense random matrices.
func sampleTransforms(rng *rand.Rand, count int, vol *models.Volume) []mgl32.Mat4 {
	transforms := []mgl32.Mat4{
		mgl32.Ident4(),
		xform.OrthoProjection(vol),
		xform.Concat(xform.OrthoProjection(vol), xform.VoxelToWorld(vol)),
	}

	for len(transforms) < count {
		var m mgl32.Mat4
		for i := range m {
			m[i] = float32(rng.Float64()*20 - 10)
		}
		transforms = append(transforms, m)
	}

	return transforms
}
