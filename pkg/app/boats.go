package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/state"
)

// CopySuffix is appended to the name of a duplicated boat.
const CopySuffix = " (Cópia)"

// Boats lists every boat in stored order.
func (s *Service) Boats(ctx context.Context) ([]model.Boat, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Boats, nil
}

// Boat returns the boat with the given id.
func (s *Service) Boat(ctx context.Context, id string) (model.Boat, error) {
	snap, err := s.snapshot()
	if err != nil {
		return model.Boat{}, err
	}
	if i := findBoat(snap.Boats, id); i >= 0 {
		return snap.Boats[i], nil
	}
	return model.Boat{}, fmt.Errorf("%w: %s", ErrBoatNotFound, id)
}

// CreateBoat registers a boat with an empty contact and zero capacity. A blank
// name creates nothing and returns ErrInvalidInput.
func (s *Service) CreateBoat(ctx context.Context, name string) (model.Boat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Boat{}, fmt.Errorf("%w: boat name required", ErrInvalidInput)
	}
	boat := model.Boat{ID: s.newID(), Name: name}
	err := s.mutate(ctx, "create_boat", func(tx *state.Tx) error {
		tx.Boats = append(tx.Boats, boat)
		return nil
	})
	if err != nil {
		return model.Boat{}, err
	}
	return boat, nil
}

// BoatDetails are the optional boat fields. Nil pointers leave a field as is.
type BoatDetails struct {
	Contact  *string
	Capacity *int
}

// UpdateBoatDetails sets contact and capacity.
func (s *Service) UpdateBoatDetails(ctx context.Context, id string, d BoatDetails) (model.Boat, error) {
	if d.Capacity != nil && *d.Capacity < 0 {
		return model.Boat{}, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	var out model.Boat
	err := s.mutate(ctx, "update_boat", func(tx *state.Tx) error {
		i := findBoat(tx.Boats, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, id)
		}
		if d.Contact != nil {
			tx.Boats[i].Contact = strings.TrimSpace(*d.Contact)
		}
		if d.Capacity != nil {
			tx.Boats[i].Capacity = *d.Capacity
		}
		out = tx.Boats[i]
		return nil
	})
	return out, err
}

// RenameBoat replaces only the name. A blank name changes nothing and returns
// ErrInvalidInput. Renaming a seed boat tombstones its seed name, otherwise the
// next load would merge the seed back in next to the renamed boat.
func (s *Service) RenameBoat(ctx context.Context, id, name string) (model.Boat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Boat{}, fmt.Errorf("%w: boat name required", ErrInvalidInput)
	}
	if s.State == nil {
		return model.Boat{}, ErrNoState
	}
	seeds := s.State.Seeds()
	var out model.Boat
	err := s.mutate(ctx, "rename_boat", func(tx *state.Tx) error {
		i := findBoat(tx.Boats, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, id)
		}
		if old := tx.Boats[i].Name; old != name {
			tx.Tombstones, _ = seed.Tombstone(tx.Tombstones, old, seeds)
		}
		tx.Boats[i].Name = name
		out = tx.Boats[i]
		return nil
	})
	return out, err
}

// DuplicateBoat copies a boat under a new id with CopySuffix appended to its
// name, and clones each of its schedules onto the copy. Boat and schedules are
// committed together.
func (s *Service) DuplicateBoat(ctx context.Context, id string) (model.Boat, []model.Schedule, error) {
	var (
		boat   model.Boat
		clones []model.Schedule
	)
	err := s.mutate(ctx, "duplicate_boat", func(tx *state.Tx) error {
		i := findBoat(tx.Boats, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, id)
		}
		boat = tx.Boats[i]
		boat.ID = s.newID()
		boat.Name += CopySuffix

		for _, sc := range tx.Schedules {
			if sc.BoatID != id {
				continue
			}
			sc.ID = s.newID()
			sc.BoatID = boat.ID
			clones = append(clones, sc)
		}
		tx.Boats = append(tx.Boats, boat)
		tx.Schedules = append(tx.Schedules, clones...)
		return nil
	})
	if err != nil {
		return model.Boat{}, nil, err
	}
	return boat, clones, nil
}

// DeleteResult describes what a boat deletion removed.
type DeleteResult struct {
	Boat      model.Boat
	Schedules int
	Logs      int
}

// DeleteBoat asks for confirmation, then removes the boat and all of its
// schedules. Arrival logs are kept unless CascadeLogs is set; kept logs show
// the boat as unknown. Deleting a seed boat records a tombstone so the seed
// merge does not bring it back.
func (s *Service) DeleteBoat(ctx context.Context, id string) (DeleteResult, error) {
	if _, err := s.Boat(ctx, id); err != nil {
		return DeleteResult{}, err
	}
	if err := s.gate(ctx, "delete_boat", PromptDeleteBoat); err != nil {
		return DeleteResult{}, err
	}

	var res DeleteResult
	seeds := s.State.Seeds()
	err := s.mutate(ctx, "delete_boat", func(tx *state.Tx) error {
		i := findBoat(tx.Boats, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, id)
		}
		res.Boat = tx.Boats[i]
		tx.Boats = append(tx.Boats[:i:i], tx.Boats[i+1:]...)

		kept := tx.Schedules[:0:0]
		for _, sc := range tx.Schedules {
			if sc.BoatID == id {
				res.Schedules++
				continue
			}
			kept = append(kept, sc)
		}
		tx.Schedules = kept

		if s.CascadeLogs {
			keptLogs := tx.Logs[:0:0]
			for _, l := range tx.Logs {
				if l.BoatID == id {
					res.Logs++
					continue
				}
				keptLogs = append(keptLogs, l)
			}
			tx.Logs = keptLogs
		}

		tx.Tombstones, _ = seed.Tombstone(tx.Tombstones, res.Boat.Name, seeds)
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	s.logger().Info("boat deleted", "id", id, "name", res.Boat.Name, "schedules", res.Schedules, "logs", res.Logs)
	return res, nil
}

// RestoreDefaults clears the tombstones and brings back every seed boat
// missing from the fleet. It returns the number of boats restored.
func (s *Service) RestoreDefaults(ctx context.Context) (int, error) {
	if s.State == nil {
		return 0, ErrNoState
	}
	seeds := s.State.Seeds()
	restored := 0
	err := s.mutate(ctx, "restore_defaults", func(tx *state.Tx) error {
		tx.Boats, restored = seed.RestoreDefaults(tx.Boats, seeds)
		tx.Tombstones = nil
		return nil
	})
	return restored, err
}
