package vbuffer

import "github.com/google/btree"

// idItem is a btree.Item wrapping a node id, grounding the index on the
// teacher's selection.Set (github.com/peco/peco/selection), which stores
// line ids the same way.
type idItem int

func (i idItem) Less(than btree.Item) bool {
	return i < than.(idItem)
}

// Index is a sorted set of node ids, one of the five pre-built indices in
// spec §3/§4.11 (Headings, Links, Landmarks, FocusableElements, FormFields).
type Index struct {
	tree *btree.BTree
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{tree: btree.New(32)}
}

// Add inserts id into the index.
func (idx *Index) Add(id int) {
	idx.tree.ReplaceOrInsert(idItem(id))
}

// Has reports whether id is present.
func (idx *Index) Has(id int) bool {
	return idx.tree.Has(idItem(id))
}

// Len returns the number of ids in the index.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Ascend calls fn for every id in ascending order until fn returns false.
func (idx *Index) Ascend(fn func(id int) bool) {
	idx.tree.Ascend(func(it btree.Item) bool {
		return fn(int(it.(idItem)))
	})
}

// AscendFrom calls fn for every id >= from, in ascending order, until fn
// returns false. Used by quick-nav's forward scan (spec §4.14).
func (idx *Index) AscendFrom(from int, fn func(id int) bool) {
	idx.tree.AscendGreaterOrEqual(idItem(from), func(it btree.Item) bool {
		return fn(int(it.(idItem)))
	})
}

// DescendFrom calls fn for every id <= from, in descending order, until fn
// returns false. Used by quick-nav's backward scan (spec §4.14).
func (idx *Index) DescendFrom(from int, fn func(id int) bool) {
	idx.tree.DescendLessOrEqual(idItem(from), func(it btree.Item) bool {
		return fn(int(it.(idItem)))
	})
}

// Min returns the smallest id in the index and true, or (0, false) if empty.
func (idx *Index) Min() (int, bool) {
	it := idx.tree.Min()
	if it == nil {
		return 0, false
	}
	return int(it.(idItem)), true
}

// Max returns the largest id in the index and true, or (0, false) if empty.
func (idx *Index) Max() (int, bool) {
	it := idx.tree.Max()
	if it == nil {
		return 0, false
	}
	return int(it.(idItem)), true
}
