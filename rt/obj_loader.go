package rt

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// parseOBJTriangles reads a Wavefront OBJ file and returns the flat list
// of triangle vertex triples it describes (quads/n-gons fan-triangulated
// from their first vertex), shared by LoadOBJ and LoadOBJTriangleSet so
// the two only differ in what they build from the same parse.
func parseOBJTriangles(filename string) ([][3]Point3, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	var vertices []Point3
	var tris [][3]Point3

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			// Vertex position
			if len(parts) < 4 {
				return nil, fmt.Errorf("invalid vertex at line %d", lineNum)
			}
			x, err1 := strconv.ParseFloat(parts[1], 64)
			y, err2 := strconv.ParseFloat(parts[2], 64)
			z, err3 := strconv.ParseFloat(parts[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("invalid vertex coordinates at line %d", lineNum)
			}
			vertices = append(vertices, Point3{X: x, Y: y, Z: z})

		case "f":
			// Face - skip anything with fewer than three vertices
			if len(parts) < 4 {
				continue
			}

			// Parse vertex indices (handle f v1 v2 v3 or f v1/vt1/vn1 v2/vt2/vn2 v3/vt3/vn3)
			indices := make([]int, 0, len(parts)-1)
			for i := 1; i < len(parts); i++ {
				indexStr := strings.Split(parts[i], "/")[0] // Get vertex index (ignore texture/normal)
				idx, err := strconv.Atoi(indexStr)
				if err != nil {
					return nil, fmt.Errorf("invalid face index at line %d", lineNum)
				}
				// OBJ indices are 1-based
				if idx < 0 {
					// Negative indices count from the end
					idx = len(vertices) + idx + 1
				}
				indices = append(indices, idx-1) // Convert to 0-based
			}

			// Triangulate if needed (for quads or n-gons)
			for i := 1; i < len(indices)-1; i++ {
				idx0 := indices[0]
				idx1 := indices[i]
				idx2 := indices[i+1]

				// Validate indices
				if idx0 < 0 || idx0 >= len(vertices) ||
					idx1 < 0 || idx1 >= len(vertices) ||
					idx2 < 0 || idx2 >= len(vertices) {
					return nil, fmt.Errorf("vertex index out of bounds at line %d", lineNum)
				}

				tris = append(tris, [3]Point3{vertices[idx0], vertices[idx1], vertices[idx2]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ file: %w", err)
	}

	fmt.Printf("Loaded OBJ: %d vertices, %d triangles\n", len(vertices), len(tris))
	return tris, nil
}

// LoadOBJ loads a Wavefront OBJ file and returns a BVH of the triangles
// RUST PORT NOTE: Consider using the 'obj' crate or 'tobj' for parsing
// Returns a pre-built BVH (not a flat list) for optimal performance
// with large meshes (hundreds of thousands of triangles)
func LoadOBJ(filename string, material Material) (Hittable, error) {
	tris, err := parseOBJTriangles(filename)
	if err != nil {
		return nil, err
	}

	triangles := make([]Hittable, len(tris))
	for i, t := range tris {
		triangles[i] = NewTriangle(t[0], t[1], t[2], material)
	}

	fmt.Printf("Building BVH for mesh...\n")
	meshBVH := NewSceneBVHNode(triangles, 0, len(triangles))
	fmt.Printf("BVH built successfully\n")

	return meshBVH, nil
}

// LoadOBJTriangleSet loads a Wavefront OBJ file as a position-only
// TriangleSet the BVH core can build over directly, alongside one
// Material per triangle (the file format carries no per-face material
// assignment, so every triangle gets the same one) for TriangleMeshBVH
// to resolve hits against.
func LoadOBJTriangleSet(filename string, material Material) (TriangleSet, []Material, error) {
	tris, err := parseOBJTriangles(filename)
	if err != nil {
		return nil, nil, err
	}

	set := make(TriangleSet, len(tris))
	materials := make([]Material, len(tris))
	for i, t := range tris {
		set[i] = TrianglePos{V0: t[0], V1: t[1], V2: t[2]}
		materials[i] = material
	}
	return set, materials, nil
}

// LoadOBJWithTransform loads an OBJ file and applies a transform
func LoadOBJWithTransform(filename string, material Material, transform *Transform) (Hittable, error) {
	mesh, err := LoadOBJ(filename, material)
	if err != nil {
		return nil, err
	}

	if transform != nil {
		return transform.Apply(mesh), nil
	}

	return mesh, nil
}
