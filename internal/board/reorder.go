package board

// Item is anything that can live in a sibling list: it has a stable
// identity and can produce a copy of itself carrying a new order index.
type Item[T any] interface {
	ItemID() string
	WithOrder(order int) T
}

// MoveAndReindex computes the order of a sibling list after a drop gesture.
// The source item is removed and reinserted at the target item's original
// position (a list move, not a swap), then every item is assigned a fresh
// contiguous zero-based order index.
//
// When either id is absent from the list, or source equals target, the
// input is returned unchanged: that is the cancelled or no-movement drop.
// The input slice is never mutated; callers rely on getting a fresh slice
// of fresh items to drive change detection.
func MoveAndReindex[T Item[T]](list []T, sourceID, targetID string) []T {
	sourceIdx, targetIdx := -1, -1
	for i, item := range list {
		switch item.ItemID() {
		case sourceID:
			sourceIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if sourceIdx < 0 || targetIdx < 0 || sourceID == targetID {
		return list
	}

	moved := make([]T, 0, len(list))
	moved = append(moved, list[:sourceIdx]...)
	moved = append(moved, list[sourceIdx+1:]...)

	moved = append(moved, *new(T))
	copy(moved[targetIdx+1:], moved[targetIdx:])
	moved[targetIdx] = list[sourceIdx]

	out := make([]T, len(moved))
	for i, item := range moved {
		out[i] = item.WithOrder(i)
	}
	return out
}
