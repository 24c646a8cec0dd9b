//TODO check to se if MIS or NEE is messing up my metallic reflection

package main

import (
	"flag"
	"fmt"
	"github.com/byvfx/bvhtracer/rt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Profiling flags
	enableProfile := flag.Bool("profile", false, "Enable profiling (CPU, memory)")
	cpuProfile := flag.Bool("cpu-profile", true, "Enable CPU profiling (requires -profile)")
	memProfile := flag.Bool("mem-profile", true, "Enable memory profiling (requires -profile)")
	traceProfile := flag.Bool("trace", false, "Enable execution tracing (requires -profile)")
	blockProfile := flag.Bool("block-profile", false, "Enable block profiling (requires -profile)")
	profileDir := flag.String("profile-dir", "profiles", "Directory to save profile files")
	showMemStats := flag.Bool("mem-stats", false, "Show memory statistics after render")
	sceneName := flag.String("scene", "random", "Scene to render (e.g. random, checkered, simple, perlin, earth, mesh, cornell, cornell-smoke)")
	bvhMethodName := flag.String("bvh-method", "sah", "BVH build method for triangle meshes: stupid|sah|sbvh")
	bvhSanity := flag.Bool("bvh-sanity", true, "Run BVH sanity checks after build")
	hdriPath := flag.String("hdri", "", "Radiance HDR file to use as the environment background")

	flag.Parse()

	bvhMethod, err := rt.ParseBVHMethod(strings.ToLower(*bvhMethodName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v. Use -help for options.\n", err)
		os.Exit(1)
	}
	rt.SanityChecksEnabled = *bvhSanity

	// Configure profiler
	profileConfig := &rt.ProfileConfig{
		Enabled:      *enableProfile,
		CPUProfile:   *cpuProfile,
		MemProfile:   *memProfile,
		TraceEnabled: *traceProfile,
		BlockProfile: *blockProfile,
		OutputDir:    *profileDir,
		SampleRate:   100,
	}

	profiler := rt.NewProfiler(profileConfig)

	// Start profiling if enabled
	if *enableProfile {
		fmt.Println("🔬 Profiling enabled")
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiler: %v\n", err)
			os.Exit(1)
		}

		// Handle graceful shutdown for profiling
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\n Interrupt received, saving profiles...")
			profiler.Stop()
			profiler.PrintTimingReport()
			if *showMemStats {
				rt.PrintMemStats()
			}
			os.Exit(0)
		}()
	}

	// Reset render stats
	rt.ResetRenderStats()

	// Time BVH construction
	bvhTimer := rt.NewTimer("BVH Construction")
	world, camera, sceneErr := loadScene(*sceneName, bvhMethod)
	if sceneErr != nil {
		fmt.Fprintf(os.Stderr, "Unknown scene '%s'. Use -help for options.\n", *sceneName)
		os.Exit(1)
	}
	bvh := rt.NewSceneBVHNodeFromList(world)
	bvhTime := bvhTimer.Stop()
	rt.GlobalRenderStats.BVHConstructTime = bvhTime

	if *hdriPath != "" {
		camera.Environment = rt.NewHDRIEnvironment(*hdriPath)
	}

	fmt.Printf("Scene '%s': %d objects, %dx%d, %d samples/px, bvh-method=%s\n",
		*sceneName, len(world.Objects), camera.ImageWidth, camera.ImageHeight, camera.SamplesPerPixel, bvhMethod)

	bucketSize := 32
	numWorkers := runtime.NumCPU()

	renderer := rt.NewBucketRenderer(camera, bvh, bucketSize, numWorkers)

	// renderer := rt.NewProgressiveRenderer(camera, bvh)

	ebiten.SetWindowSize(camera.ImageWidth, camera.ImageHeight)
	ebiten.SetWindowTitle(windowTitle(world, bvhMethod, *enableProfile))

	if err := ebiten.RunGame(renderer); err != nil {
		panic(err)
	}

	// Stop profiling and print reports
	if *enableProfile {
		profiler.Stop()
		profiler.PrintTimingReport()
	}

	if *showMemStats {
		rt.PrintMemStats()
	}
}

// windowTitle reports the active BVH method and, when the scene contains
// triangle meshes indexed by the core, their combined node/leaf counts.
// With profiling on, mesh traversal is switched onto the diagnostic path
// so GlobalRenderStats picks up node/leaf visit counts.
func windowTitle(world *rt.HittableList, bvhMethod rt.BVHMethod, profiling bool) string {
	title := fmt.Sprintf("Go Raytracer [bvh=%s]", bvhMethod)

	var nodes, leaves int
	for _, obj := range world.Objects {
		mesh, ok := obj.(*rt.TriangleMeshBVH)
		if !ok {
			continue
		}
		stats := mesh.Stats()
		nodes += stats.TotalNodes
		leaves += stats.LeafCount
		if profiling {
			mesh.EnableStatsCollection()
		}
	}
	if nodes > 0 {
		title += fmt.Sprintf(" %d nodes / %d leaves", nodes, leaves)
	}
	return title
}

func loadScene(name string, bvhMethod rt.BVHMethod) (*rt.HittableList, *rt.Camera, error) {
	switch strings.ToLower(name) {
	case "random", "randomscene":
		return rt.RandomScene(), rt.RandomSceneCamera(), nil
	case "checkered", "checker", "checkered-spheres":
		return rt.CheckeredSpheresScene(), rt.CheckeredSpheresCamera(), nil
	case "simple", "simple-scene":
		return rt.SimpleScene(), rt.SimpleSceneCamera(), nil
	case "perlin", "perlin-spheres":
		return rt.PerlinSpheresScene(), rt.PerlinSpheresCamera(), nil
	case "earth", "earth-scene":
		return rt.EarthScene(), rt.EarthCamera(), nil
	case "cornell", "cornell-box":
		return rt.CornellBoxScene(), rt.CornellBoxCamera(), nil
	case "cornell-smoke", "cornell-fog":
		return rt.CornellSmokeScene(), rt.CornellSmokeCamera(), nil
	case "mesh", "bvh-mesh", "triangle-mesh":
		return rt.TriangleMeshScene(bvhMethod), rt.TriangleMeshSceneCamera(), nil
	default:
		return nil, nil, fmt.Errorf("unknown scene: %s", name)
	}
}
