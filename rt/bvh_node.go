package rt

// BVHNode is a single entry in a flat BVH node pool. A node is a leaf iff
// Count > 0, in which case LeftFirst indexes the first triangle index in
// the owning BVH's Indices array belonging to this leaf. An interior node
// stores the index of its left child in LeftFirst; the right child always
// sits immediately after it (indices come in sibling pairs).
type BVHNode struct {
	Bounds    AABB
	LeftFirst uint32
	Count     uint32
}

// IsLeaf reports whether this node terminates the hierarchy.
func (n *BVHNode) IsLeaf() bool {
	return n.Count > 0
}

// Left returns the index of this interior node's left child.
func (n *BVHNode) Left() uint32 {
	return n.LeftFirst
}

// Right returns the index of this interior node's right child, always
// the left child's index plus one since children are allocated as
// sibling pairs.
func (n *BVHNode) Right() uint32 {
	return n.LeftFirst + 1
}

// First returns the index of the first triangle index belonging to this
// leaf in the owning BVH's Indices array.
func (n *BVHNode) First() uint32 {
	return n.LeftFirst
}

// BVH is a flat, array-backed bounding volume hierarchy over a
// TriangleSet. Nodes live in a preallocated pool; the root is always at
// index 0 and a node's children, when present, occupy a contiguous pair
// starting at NextFree at the time they were allocated.
type BVH struct {
	Nodes    []BVHNode
	NextFree uint32
	Indices  TriangleMapping
}

// newBVH allocates a node pool sized for n triangles (2n-1 nodes plus
// the reserved alignment slot covers a binary tree built by repeated
// splitting without duplication; SBVH's spatial splits may need more,
// handled by AllocPair growing the pool, and may grow Indices beyond n,
// handled by AppendIndices) and an empty index array with capacity for
// the common, non-duplicating case. The array is populated purely by
// leaves appending their index subset during the build, so its order
// reflects a depth-first leaf traversal rather than triangle order.
// A zero-triangle build gets an empty pool, which traversal treats as
// an immediate miss.
func newBVH(n int) *BVH {
	if n == 0 {
		return &BVH{NextFree: 2}
	}
	poolSize := 2
	if n > 1 {
		poolSize = 2 * n
	}
	return &BVH{
		Nodes:    make([]BVHNode, poolSize),
		NextFree: 2,
		Indices:  make(TriangleMapping, 0, n),
	}
}

// Root returns the index of the hierarchy's root node, always 0.
func (b *BVH) Root() uint32 {
	return 0
}

// Node returns a pointer to the node at index i, usable to mutate it in
// place during construction.
func (b *BVH) Node(i uint32) *BVHNode {
	return &b.Nodes[i]
}

// AllocPair reserves the next two free pool slots as a sibling pair and
// returns their indices. The pre-sized pool suffices for object-split
// builds; a spatial-split build that duplicated enough triangles to
// outgrow it gets more slots appended. Callers holding a *BVHNode from
// before an AllocPair call must re-fetch it, since growth may move the
// pool.
func (b *BVH) AllocPair() (left, right uint32) {
	left = b.NextFree
	right = b.NextFree + 1
	b.NextFree += 2
	for uint32(len(b.Nodes)) < b.NextFree {
		b.Nodes = append(b.Nodes, BVHNode{})
	}
	return left, right
}

// AppendIndices appends subset to the index array, growing it beyond its
// initial n-sized capacity when a spatial split has duplicated triangle
// references, and returns the offset at which the appended run starts.
func (b *BVH) AppendIndices(subset TriangleMapping) uint32 {
	offset := uint32(len(b.Indices))
	b.Indices = append(b.Indices, subset...)
	return offset
}

// NodeCount returns the number of nodes actually in use. Pool slot 1 is
// reserved so the first child pair starts at 2 and never holds a node,
// hence a root-only hierarchy counts 1 and any deeper one NextFree-1.
func (b *BVH) NodeCount() int {
	if len(b.Nodes) == 0 {
		return 0
	}
	if b.NextFree <= 2 {
		return 1
	}
	return int(b.NextFree) - 1
}
