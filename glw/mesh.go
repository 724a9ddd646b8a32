package glw

// Cube returns the eight corners of a unit cube centered at the origin and
// the indices of its twelve triangles, wound counter-clockwise when seen
// from outside.
func Cube() (vertices []float32, indices []uint32) {
	vertices = []float32{
		-0.5, -0.5, -0.5,
		+0.5, -0.5, -0.5,
		+0.5, +0.5, -0.5,
		-0.5, +0.5, -0.5,
		-0.5, -0.5, +0.5,
		+0.5, -0.5, +0.5,
		+0.5, +0.5, +0.5,
		-0.5, +0.5, +0.5,
	}
	indices = []uint32{
		0, 3, 2, 2, 1, 0, // -z
		4, 5, 6, 6, 7, 4, // +z
		0, 4, 7, 7, 3, 0, // -x
		1, 2, 6, 6, 5, 1, // +x
		0, 1, 5, 5, 4, 0, // -y
		3, 7, 6, 6, 2, 3, // +y
	}
	return vertices, indices
}
