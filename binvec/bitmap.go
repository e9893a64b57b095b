package binvec

import "github.com/RoaringBitmap/roaring/v2"

// ActiveBitmap collects the non-zero positions of v into a roaring bitmap.
//
// Histogram construction and row sampling intersect these bitmaps across
// features, which is far cheaper than re-walking each vector.
func ActiveBitmap[V Integer](v BinVector[V]) *roaring.Bitmap {
	rb := roaring.New()
	for i := range v.Active() {
		rb.Add(uint32(i)) //nolint:gosec // positions are bounded by Size
	}
	return rb
}
