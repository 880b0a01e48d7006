package cube

// Sample returns the material at coord after walking root, stopping at
// the first leaf reached. If the tree is shallower than coord.Depth (a
// normalized Solid is reached early), that leaf's material is returned.
// If the tree is still Interior once coord.Depth bits are exhausted, the
// walk continues toward the minimum corner of the addressed voxel until
// a leaf is found.
func Sample(root *Cube, coord CubeCoord) (uint8, error) {
	if err := validateCoord(coord); err != nil {
		return 0, err
	}
	node := root
	level := int32(coord.Depth) - 1
	for {
		m, isLeaf := node.IsSolid()
		if isLeaf {
			return m, nil
		}
		var idx uint8
		if level >= 0 {
			idx = OctantIndex(
				bitAt(coord.Pos[0], uint32(level)),
				bitAt(coord.Pos[1], uint32(level)),
				bitAt(coord.Pos[2], uint32(level)),
			)
			level--
		} else {
			idx = 0
		}
		node = node.Child(int(idx))
	}
}

// SetAt returns a new root equal to root except at coord, where the
// value is Solid(mat). Subtrees off the path to coord are shared with
// root; the path is normalized bottom-up as it is rebuilt.
func SetAt(root *Cube, coord CubeCoord, mat uint8) (*Cube, error) {
	if err := validateCoord(coord); err != nil {
		return nil, err
	}
	return setAt(root, coord.Pos, coord.Depth, mat), nil
}

func setAt(node *Cube, pos [3]int32, level uint32, mat uint8) *Cube {
	if level == 0 {
		return Solid(mat)
	}
	children := childrenOf(node)
	li := level - 1
	idx := OctantIndex(bitAt(pos[0], li), bitAt(pos[1], li), bitAt(pos[2], li))
	children[idx] = setAt(children[idx], pos, level-1, mat)
	return normalizeInterior(children)
}

// childrenOf returns node's eight children, splitting a Solid leaf into
// eight identical (shared) children if necessary.
func childrenOf(node *Cube) [8]*Cube {
	if kids, ok := node.IsInterior(); ok {
		return kids
	}
	var kids [8]*Cube
	for i := range kids {
		kids[i] = node
	}
	return kids
}

// GetSubtree returns the Cube rooted at coord. If the path reaches a
// leaf before coord.Depth is exhausted, that leaf is returned unchanged,
// representing the whole addressed region as homogeneous.
func GetSubtree(root *Cube, coord CubeCoord) (*Cube, error) {
	if err := validateCoord(coord); err != nil {
		return nil, err
	}
	node := root
	for level := int32(coord.Depth) - 1; level >= 0; level-- {
		m, isLeaf := node.IsSolid()
		if isLeaf {
			return Solid(m), nil
		}
		idx := OctantIndex(
			bitAt(coord.Pos[0], uint32(level)),
			bitAt(coord.Pos[1], uint32(level)),
			bitAt(coord.Pos[2], uint32(level)),
		)
		node = node.Child(int(idx))
	}
	return node, nil
}

// SetSubtree replaces the subtree at coord with sub, splitting leaves
// along the path as needed and normalizing bottom-up.
func SetSubtree(root *Cube, coord CubeCoord, sub *Cube) (*Cube, error) {
	if err := validateCoord(coord); err != nil {
		return nil, err
	}
	return setSubtree(root, coord.Pos, coord.Depth, sub), nil
}

func setSubtree(node *Cube, pos [3]int32, level uint32, sub *Cube) *Cube {
	if level == 0 {
		return sub
	}
	children := childrenOf(node)
	li := level - 1
	idx := OctantIndex(bitAt(pos[0], li), bitAt(pos[1], li), bitAt(pos[2], li))
	children[idx] = setSubtree(children[idx], pos, level-1, sub)
	return normalizeInterior(children)
}

// UpdateDepth returns a copy of root whose content under every node
// targetDepth levels down is replaced by src. A branch that already
// equals src at the depth it would be replaced — directly, or because
// every descendant recomputation left it unchanged — is shared rather
// than rebuilt, so stamping an already-uniform region is a no-op all the
// way up to root.
func UpdateDepth(root, src *Cube, targetDepth uint32) *Cube {
	return stampAt(root, src, targetDepth)
}

func stampAt(node, src *Cube, level uint32) *Cube {
	if node.Equal(src) {
		// Above the target level only a Solid src leaves an equal node
		// unchanged; an Interior src would still be stamped below it.
		if _, srcSolid := src.IsSolid(); srcSolid || level == 0 {
			return node
		}
	}
	if level == 0 {
		return src
	}
	if m, isLeaf := node.IsSolid(); isLeaf {
		// Every child is the same Solid(m); recompute once and share it
		// across all eight slots instead of rebuilding identical subtrees.
		shared := stampAt(Solid(m), src, level-1)
		var children [8]*Cube
		for i := range children {
			children[i] = shared
		}
		return normalizeInterior(children)
	}
	children := childrenOf(node)
	changed := false
	for i, c := range children {
		nc := stampAt(c, src, level-1)
		if nc != c {
			changed = true
		}
		children[i] = nc
	}
	if !changed {
		return node
	}
	return normalizeInterior(children)
}
