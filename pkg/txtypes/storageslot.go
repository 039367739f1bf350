package txtypes

import "sort"

// StorageSlot is a (key, value) pair seeded into a newly created
// contract's storage. StorageSlots in a Create transaction are always
// kept sorted ascending by Key -- see SortStorageSlots and the
// StorageSlotsGuard in capabilities.go.
type StorageSlot struct {
	Key   Bytes32
	Value Bytes32
}

func (s StorageSlot) sizeStatic() int           { return 32 + 32 }
func (s StorageSlot) sizeDynamic() int          { return 0 }
func (s StorageSlot) encodeStatic(dst []byte) []byte {
	dst = appendArray32(dst, s.Key)
	dst = appendArray32(dst, s.Value)
	return dst
}
func (s StorageSlot) encodeDynamic(dst []byte) []byte { return dst }

func encodeStorageSlot(s StorageSlot) []byte {
	dst := make([]byte, 0, 64)
	return s.encodeStatic(dst)
}

func decodeStorageSlot(c *cursor) (StorageSlot, error) {
	var s StorageSlot
	var err error
	if s.Key, err = c.readArray32(); err != nil {
		return s, err
	}
	if s.Value, err = c.readArray32(); err != nil {
		return s, err
	}
	return s, nil
}

// SortStorageSlots sorts slots ascending by Key in place and also returns
// it, so callers can chain it at every mutation boundary.
func SortStorageSlots(slots []StorageSlot) []StorageSlot {
	sort.Slice(slots, func(i, j int) bool {
		return lessBytes32(slots[i].Key, slots[j].Key)
	})
	return slots
}

func IsStorageSlotsSorted(slots []StorageSlot) bool {
	for i := 1; i < len(slots); i++ {
		if lessBytes32(slots[i].Key, slots[i-1].Key) {
			return false
		}
	}
	return true
}

func lessBytes32(a, b Bytes32) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
