package requirements

// MoveBetween moves the item at srcIdx in src to dstIdx in dst as one
// atomic operation, returning updated copies of both lists. The moved item
// keeps its id, text and enabled state; its weight is preserved, defaulting
// to 1 when it had none. When dstIdx is negative or past the end the item
// is appended. No validation runs here: whether the resulting weights still
// sum to 100 is checked at publication, not at move time.
//
// ok is false (and both lists returned unchanged) when srcIdx is out of
// range.
func MoveBetween(src []Item, srcIdx int, dst []Item, dstIdx int) (newSrc, newDst []Item, ok bool) {
	if srcIdx < 0 || srcIdx >= len(src) {
		return cloneItems(src), cloneItems(dst), false
	}

	item := src[srcIdx]
	if item.Weight == 0 {
		item.Weight = defaultMoveWeight
	}

	newSrc = make([]Item, 0, len(src)-1)
	newSrc = append(newSrc, src[:srcIdx]...)
	newSrc = append(newSrc, src[srcIdx+1:]...)

	if dstIdx < 0 || dstIdx > len(dst) {
		dstIdx = len(dst)
	}
	newDst = make([]Item, 0, len(dst)+1)
	newDst = append(newDst, dst[:dstIdx]...)
	newDst = append(newDst, item)
	newDst = append(newDst, dst[dstIdx:]...)

	return newSrc, newDst, true
}

// Reorder moves the item at srcIdx to dstIdx within the same list,
// returning an updated copy. Out-of-range destinations append; an
// out-of-range source returns the list unchanged with ok false.
func Reorder(items []Item, srcIdx, dstIdx int) (newItems []Item, ok bool) {
	if srcIdx < 0 || srcIdx >= len(items) {
		return cloneItems(items), false
	}

	item := items[srcIdx]
	rest := make([]Item, 0, len(items)-1)
	rest = append(rest, items[:srcIdx]...)
	rest = append(rest, items[srcIdx+1:]...)

	if dstIdx < 0 || dstIdx > len(rest) {
		dstIdx = len(rest)
	}
	newItems = make([]Item, 0, len(items))
	newItems = append(newItems, rest[:dstIdx]...)
	newItems = append(newItems, item)
	newItems = append(newItems, rest[dstIdx:]...)

	return newItems, true
}
