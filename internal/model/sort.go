package model

import "sort"

// SortField names the column sort(key) can order by.
type SortField int

const (
	SortNone SortField = iota // "unsorted": daemon-supplied order
	SortName
	SortState
	SortStatus
	SortCpu
	SortMemory
	SortId
	SortImage
	SortRx
	SortTx
)

// SortOrder is ascending or descending.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// SortKey pairs a field with a direction; SortNone ignores Order.
type SortKey struct {
	Field SortField
	Order SortOrder
}

// less reports whether a sorts before b for the given field, independent
// of direction. Missing cpu/memory samples compare less than any present
// sample, per spec.md §3/§8.
func less(field SortField, a, b *ContainerItem) bool {
	switch field {
	case SortName:
		return a.Name < b.Name
	case SortState:
		return a.State.Less(b.State)
	case SortStatus:
		return a.Status < b.Status
	case SortId:
		return a.Id.Less(b.Id)
	case SortImage:
		return a.Image < b.Image
	case SortRx:
		return a.RxBytes < b.RxBytes
	case SortTx:
		return a.TxBytes < b.TxBytes
	case SortCpu:
		av, aok := a.LastCPU()
		bv, bok := b.LastCPU()
		return lessWithMissing(av, aok, bv, bok)
	case SortMemory:
		av, aok := a.LastMem()
		bv, bok := b.LastMem()
		return lessWithMissing(av, aok, bv, bok)
	default:
		return false
	}
}

func lessWithMissing(av float64, aok bool, bv float64, bok bool) bool {
	if !aok && !bok {
		return false
	}
	if !aok {
		return true
	}
	if !bok {
		return false
	}
	return av < bv
}

// Sort stably orders items by key. SortKey{SortNone, _} is a no-op, so
// callers reset to daemon order by keeping the pre-sort slice around
// (internal/appstate does this).
func Sort(items []*ContainerItem, key SortKey) {
	if key.Field == SortNone {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if key.Order == SortDesc {
			return less(key.Field, items[j], items[i])
		}
		return less(key.Field, items[i], items[j])
	})
}
