// Package kinematic advances a state.State's velocity columns one step at a
// time under a motionmodel.Variant.
package kinematic

import (
	"github.com/nav-stack/mppicore/motionmodel"
	"github.com/nav-stack/mppicore/state"
)

// Propagate iterates t from 0 to horizon-2 and writes row t+1's velocity
// columns as motionmodel.Step applied to row t. Row 0's velocities must
// already be seeded by the caller (the measured robot velocity, broadcast
// across every batch row) before calling Propagate.
func Propagate(s *state.State, variant motionmodel.Variant, cfg motionmodel.AckermannConfig) error {
	horizon := s.Horizon()
	for b := 0; b < s.Batch(); b++ {
		for t := 0; t < horizon-1; t++ {
			row := s.Row(b, t)
			next, err := motionmodel.Step(variant, row, cfg)
			if err != nil {
				return err
			}
			s.SetVelocity(b, t+1, next)
		}
	}
	return nil
}
