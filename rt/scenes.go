//TODO: add cameras that corresspond with each scene.

package rt

import (
	"math"
	"math/rand"
)

type SceneConfig struct {
	GroundColor      Color
	SphereGridBounds struct{ MinA, MaxA, MinB, MaxB int }
	MovingSphereProb float64
	LambertProb      float64
	DielectricProb   float64
	MetalProb        float64
	LargeSpheresY    float64
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		GroundColor: Color{X: 0.5, Y: 0.5, Z: 0.5},
		SphereGridBounds: struct {
			MinA int
			MaxA int
			MinB int
			MaxB int
		}{-10, 10, -10, 10},
		MovingSphereProb: 0,
		LambertProb:      0.3,
		DielectricProb:   0.3,
		MetalProb:        0.3,
		LargeSpheresY:    1.0,
	}
}

func RandomScene() *HittableList {
	return RandomSceneWithConfig(DefaultSceneConfig())
}

func RandomSceneWithConfig(config SceneConfig) *HittableList {
	world := NewHittableList()
	groundChecker := NewCheckerTextureFromColors(
		0.32,
		config.GroundColor,
		Color{X: 0.9, Y: 0.9, Z: 0.9},
	)
	groundMaterial := NewLambertianTexture(groundChecker)
	world.Add(NewPlane(Point3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, groundMaterial))

	for a := config.SphereGridBounds.MinA; a < config.SphereGridBounds.MaxA; a++ {
		for b := config.SphereGridBounds.MinB; b < config.SphereGridBounds.MaxB; b++ {
			chooseMat := rand.Float64()
			center := Point3{
				X: float64(a) + 0.9*rand.Float64(),
				Y: 0.2,
				Z: float64(b) + 0.9*rand.Float64(),
			}

			if center.Sub(Point3{X: 4, Y: 0.2, Z: 0}).Len() > 0.9 {
				addRandomSphere(world, center, chooseMat, config)
			}
		}
	}
	addLargeSpheres(world, config.LargeSpheresY)

	return world
}
func addRandomSphere(world *HittableList, center Point3, chooseMat float64, config SceneConfig) {
	var sphereMaterial Material

	lambertThreshold := config.LambertProb
	metalThreshold := config.MetalProb + lambertThreshold
	dielectricThreshold := config.DielectricProb + metalThreshold

	if chooseMat < lambertThreshold {
		albedo := Color{
			X: rand.Float64() * rand.Float64(),
			Y: rand.Float64() * rand.Float64(),
			Z: rand.Float64() * rand.Float64(),
		}
		sphereMaterial = NewLambertian(albedo)
		center2 := center.Add(Vec3{X: 0, Y: RandomDoubleRange(0, 0.5), Z: 0})
		world.Add(NewMovingSphere(center, center2, 0.2, sphereMaterial))
	} else if chooseMat < metalThreshold {

		albedo := Color{
			X: 0.5 + rand.Float64()*0.5,
			Y: 0.5 + rand.Float64()*0.5,
			Z: 0.5 + rand.Float64()*0.5,
		}
		fuzz := rand.Float64() * 0.5
		sphereMaterial = NewMetal(albedo, fuzz)
		world.Add(NewSphere(center, 0.2, sphereMaterial))
	} else if chooseMat < dielectricThreshold {

		sphereMaterial = NewDielectric(1.5)
		world.Add(NewSphere(center, 0.2, sphereMaterial))
	}
}

func addLargeSpheres(world *HittableList, y float64) {
	// Glass sphere (center)
	material1 := NewDielectric(1.5)
	world.Add(NewSphere(Point3{X: 0, Y: y, Z: 0}, 1.0, material1))

	// Diffuse sphere (left)
	material2 := NewLambertian(Color{X: 0.4, Y: 0.2, Z: 0.1})
	world.Add(NewSphere(Point3{X: -4, Y: y, Z: 0}, 1.0, material2))

	// Metal sphere (right)
	material3 := NewMetal(Color{X: 0.7, Y: 0.6, Z: 0.5}, 0.0)
	world.Add(NewSphere(Point3{X: 4, Y: y, Z: 0}, 1.0, material3))
}

func CheckeredSpheresScene() *HittableList {
	world := NewHittableList()

	checker := NewCheckerTextureFromColors(
		0.32,
		Color{X: 0.2, Y: 0.3, Z: 0.1},
		Color{X: 0.9, Y: 0.9, Z: 0.9},
	)

	checkerMaterial := NewLambertianTexture(checker)

	// Bottom sphere (at y=-10)
	world.Add(NewSphere(Point3{X: 0, Y: -10, Z: 0}, 10, checkerMaterial))

	// Top sphere (at y=10)
	world.Add(NewSphere(Point3{X: 0, Y: 10, Z: 0}, 10, checkerMaterial))

	return world
}

func SimpleScene() *HittableList {
	world := NewHittableList()

	materialGround := NewLambertian(Color{X: 0.8, Y: 0.8, Z: 0.0})
	materialCenter := NewLambertian(Color{X: 0.1, Y: 0.2, Z: 0.5})
	materialLeft := NewDielectric(1.5)
	materialBubble := NewDielectric(1.0 / 1.5)
	materialRight := NewMetal(Color{X: 0.8, Y: 0.6, Z: 0.2}, 0.0)

	world.Add(NewPlane(Point3{X: 0, Y: -0.5, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, materialGround))
	world.Add(NewSphere(Point3{X: 0, Y: 0, Z: -1}, 0.5, materialCenter))
	world.Add(NewSphere(Point3{X: -1, Y: 0, Z: -1}, 0.5, materialLeft))
	world.Add(NewSphere(Point3{X: -1, Y: 0, Z: -1}, 0.4, materialBubble))
	world.Add(NewSphere(Point3{X: 1, Y: 0, Z: -1}, 0.5, materialRight))

	return world
}
func EarthScene() *HittableList {
	world := NewHittableList()

	earthTexture := NewImageTexture("earthmap.jpg")
	earthSurface := NewLambertianTexture(earthTexture)
	globe := NewSphere(Point3{X: 0, Y: 0, Z: 0}, 2, earthSurface)

	world.Add(globe)
	return world
}
func EarthCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 800
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 0, Y: 0, Z: 12}
	camera.LookAt = Point3{X: 0, Y: 0, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Initialize()

	return camera
}
func PerlinSpheresScene() *HittableList {
	world := NewHittableList()

	pertext := NewNoiseTexture(4.0)

	world.Add(NewSphere(Point3{X: 0, Y: 2, Z: 0}, 2, NewLambertianTexture(pertext)))

	world.Add(NewPlane(Point3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, NewLambertianTexture(pertext)))

	return world
}

// PerlinSpheresCamera returns the camera configuration for the Perlin spheres scene
func PerlinSpheresCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 600
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 13, Y: 2, Z: -10}
	camera.LookAt = Point3{X: 0, Y: 1.5, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Initialize()

	return camera
}

// RandomSceneCamera returns the camera configuration for RandomScene,
// the classic Ray Tracing in One Weekend final-scene viewpoint.
func RandomSceneCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 800
	camera.SamplesPerPixel = 50
	camera.MaxDepth = 30
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 13, Y: 2, Z: 3}
	camera.LookAt = Point3{X: 0, Y: 0, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0.6
	camera.FocusDist = 10.0
	camera.Initialize()

	return camera
}

// CheckeredSpheresCamera returns the camera configuration for CheckeredSpheresScene.
func CheckeredSpheresCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 600
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 13, Y: 2, Z: 3}
	camera.LookAt = Point3{X: 0, Y: 0, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Initialize()

	return camera
}

// SimpleSceneCamera returns the camera configuration for SimpleScene.
func SimpleSceneCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 400
	camera.SamplesPerPixel = 50
	camera.MaxDepth = 20
	camera.Vfov = 90
	camera.LookFrom = Point3{X: 0, Y: 0, Z: 0}
	camera.LookAt = Point3{X: 0, Y: 0, Z: -1}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Initialize()

	return camera
}

// TriangleMeshScene builds a procedural triangle-soup mesh (a
// tessellated icosphere, standing in for an externally loaded asset)
// indexed by the triangle BVH core instead of SceneBVHNode, so the live
// renderer traces it through BuildBVH and FindClosestIntersection the
// way an OBJ-loaded mesh would via LoadOBJTriangleSet.
func TriangleMeshScene(method BVHMethod) *HittableList {
	world := NewHittableList()

	world.Add(NewPlane(Point3{X: 0, Y: -1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, NewLambertian(Color{X: 0.5, Y: 0.5, Z: 0.5})))

	triangles := icosphereTriangles(Point3{X: 0, Y: 0.3, Z: 0}, 1.2, 2)
	materials := make([]Material, len(triangles))
	meshMat := NewMetal(Color{X: 0.8, Y: 0.8, Z: 0.9}, 0.05)
	for i := range materials {
		materials[i] = meshMat
	}

	world.Add(NewTriangleMeshBVH(method, triangles, materials))
	return world
}

// TriangleMeshSceneCamera returns the camera configuration for TriangleMeshScene.
func TriangleMeshSceneCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 600
	camera.SamplesPerPixel = 50
	camera.MaxDepth = 20
	camera.Vfov = 30
	camera.LookFrom = Point3{X: 4, Y: 2, Z: 5}
	camera.LookAt = Point3{X: 0, Y: 0.3, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Initialize()

	return camera
}

// icosphereTriangles generates a triangle-soup sphere by recursively
// subdividing a regular icosahedron, giving TriangleMeshScene a
// moderately sized, genuinely straddling-triangle-rich mesh without
// depending on an external OBJ asset.
func icosphereTriangles(center Point3, radius float64, subdivisions int) TriangleSet {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	verts := []Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	for i := range verts {
		verts[i] = verts[i].Unit()
	}

	type face [3]int
	faces := []face{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	midpointCache := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if idx, ok := midpointCache[key]; ok {
			return idx
		}
		m := verts[a].Add(verts[b]).Scale(0.5).Unit()
		verts = append(verts, m)
		idx := len(verts) - 1
		midpointCache[key] = idx
		return idx
	}

	for s := 0; s < subdivisions; s++ {
		var next []face
		for _, f := range faces {
			a := midpoint(f[0], f[1])
			b := midpoint(f[1], f[2])
			c := midpoint(f[2], f[0])
			next = append(next,
				face{f[0], a, c},
				face{a, f[1], b},
				face{c, b, f[2]},
				face{a, b, c},
			)
		}
		faces = next
	}

	set := make(TriangleSet, 0, len(faces))
	for _, f := range faces {
		v0 := center.Add(verts[f[0]].Scale(radius))
		v1 := center.Add(verts[f[1]].Scale(radius))
		v2 := center.Add(verts[f[2]].Scale(radius))
		set = append(set, TrianglePos{V0: v0, V1: v1, V2: v2})
	}
	return set
}

// cornellWalls builds the five walls of the classic Cornell box.
func cornellWalls(world *HittableList) {
	red := NewLambertian(Color{X: 0.65, Y: 0.05, Z: 0.05})
	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})
	green := NewLambertian(Color{X: 0.12, Y: 0.45, Z: 0.15})

	world.Add(NewQuad(Point3{X: 555, Y: 0, Z: 0}, Vec3{Y: 555}, Vec3{Z: 555}, green))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 0}, Vec3{Y: 555}, Vec3{Z: 555}, red))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 555}, Vec3{Z: 555}, white))
	world.Add(NewQuad(Point3{X: 555, Y: 555, Z: 555}, Vec3{X: -555}, Vec3{Z: -555}, white))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 555}, Vec3{X: 555}, Vec3{Y: 555}, white))
}

// CornellBoxScene is the classic Cornell box: colored walls, an area
// light in the ceiling, and two rotated boxes.
func CornellBoxScene() *HittableList {
	world := NewHittableList()
	cornellWalls(world)

	light := NewDiffuseLightColor(Color{X: 15, Y: 15, Z: 15})
	world.Add(NewQuad(Point3{X: 343, Y: 554, Z: 332}, Vec3{X: -130}, Vec3{Z: -105}, light))

	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})

	tall := Box(Point3{}, Point3{X: 165, Y: 330, Z: 165}, white)
	tall = Ry(tall, 15)
	tall = NewTranslate(tall, Vec3{X: 265, Z: 295})
	world.Add(tall)

	short := Box(Point3{}, Point3{X: 165, Y: 165, Z: 165}, white)
	short = Ry(short, -18)
	short = NewTranslate(short, Vec3{X: 130, Z: 65})
	world.Add(short)

	return world
}

// CornellBoxCamera returns the camera configuration for CornellBoxScene.
func CornellBoxCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 1.0
	camera.ImageWidth = 500
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 20
	camera.Vfov = 40
	camera.LookFrom = Point3{X: 278, Y: 278, Z: -800}
	camera.LookAt = Point3{X: 278, Y: 278, Z: 0}
	camera.Vup = Vec3{Y: 1}
	camera.DefocusAngle = 0
	camera.Background = BackgroundBlack
	camera.UseSkyGradient = false
	camera.Initialize()

	return camera
}

// CornellSmokeScene is the Cornell box with its boxes replaced by
// constant-density media and a disc light in the ceiling.
func CornellSmokeScene() *HittableList {
	world := NewHittableList()
	cornellWalls(world)

	light := NewDiffuseLightColor(Color{X: 7, Y: 7, Z: 7})
	world.Add(NewCircle(Point3{X: 278, Y: 554, Z: 278}, Vec3{Y: -1}, 120, light))

	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})

	tall := Box(Point3{}, Point3{X: 165, Y: 330, Z: 165}, white)
	tall = Ry(tall, 15)
	tall = NewTranslate(tall, Vec3{X: 265, Z: 295})
	world.Add(NewVolumeFromColor(tall, 0.01, Color{X: 0, Y: 0, Z: 0}))

	short := Box(Point3{}, Point3{X: 165, Y: 165, Z: 165}, white)
	short = Ry(short, -18)
	short = NewTranslate(short, Vec3{X: 130, Z: 65})
	world.Add(NewVolumeFromColor(short, 0.01, Color{X: 1, Y: 1, Z: 1}))

	return world
}

// CornellSmokeCamera returns the camera configuration for CornellSmokeScene.
func CornellSmokeCamera() *Camera {
	camera := CornellBoxCamera()
	camera.SamplesPerPixel = 64
	camera.Initialize()

	return camera
}
