package binvec

// searchSorted locates key in a, which must be sorted in strictly increasing
// order. It returns the position of an exact match, or -(insertionPoint)-1
// when key is absent, where insertionPoint is the position at which key would
// keep a sorted.
func searchSorted[T Integer](a []T, key T) int {
	lo, hi := 0, len(a)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case a[mid] < key:
			lo = mid + 1
		case key < a[mid]:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}
