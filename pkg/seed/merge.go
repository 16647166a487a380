package seed

import "tableflip.dev/riverline/pkg/model"

// MergeBoats appends every seed boat whose name matches no persisted boat.
// Names are compared exactly. Seed boats named in tombstones were deleted or
// renamed on purpose and are not brought back, and a seed whose id is already
// taken is skipped. The second return value reports whether anything was
// appended.
func MergeBoats(persisted, seeds []model.Boat, tombstones []string) ([]model.Boat, bool) {
	names := make(map[string]struct{}, len(persisted)+len(tombstones))
	ids := make(map[string]struct{}, len(persisted))
	for _, b := range persisted {
		names[b.Name] = struct{}{}
		ids[b.ID] = struct{}{}
	}
	for _, name := range tombstones {
		names[name] = struct{}{}
	}

	out := append([]model.Boat(nil), persisted...)
	changed := false
	for _, b := range seeds {
		if _, found := names[b.Name]; found {
			continue
		}
		if _, taken := ids[b.ID]; taken {
			continue
		}
		out = append(out, b)
		names[b.Name] = struct{}{}
		ids[b.ID] = struct{}{}
		changed = true
	}
	return out, changed
}

// Tombstone records a deleted seed boat so the next merge skips it. Names that
// are not seed boats, or already recorded, leave the list unchanged.
func Tombstone(tombstones []string, name string, seeds Seeds) ([]string, bool) {
	if !seeds.IsSeedBoat(name) {
		return tombstones, false
	}
	for _, t := range tombstones {
		if t == name {
			return tombstones, false
		}
	}
	return append(append([]string(nil), tombstones...), name), true
}

// RestoreDefaults brings back every seed boat missing from boats, ignoring
// tombstones. Callers clear their tombstone list afterwards.
func RestoreDefaults(boats []model.Boat, seeds Seeds) ([]model.Boat, int) {
	merged, _ := MergeBoats(boats, seeds.Boats, nil)
	return merged, len(merged) - len(boats)
}
