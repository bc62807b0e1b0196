// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"slices"

	"github.com/pdiddy/trialscout/pkg/types"
)

// merger de-duplicates trials by identifier and records which names found
// each trial.
type merger struct {
	index  map[string]int // trial id → position in trials
	trials []types.Trial
}

func newMerger() *merger {
	return &merger{index: make(map[string]int)}
}

// add merges the trials found for name. The first sighting of a trial
// inserts it with MatchedNames = [name]; later sightings append name unless
// it is already recorded. Adding the same (name, trials) twice is a no-op.
func (m *merger) add(name string, trials []types.Trial) {
	for _, t := range trials {
		if t.ID == "" {
			continue
		}
		if idx, ok := m.index[t.ID]; ok {
			if !slices.Contains(m.trials[idx].MatchedNames, name) {
				m.trials[idx].MatchedNames = append(m.trials[idx].MatchedNames, name)
			}
			continue
		}
		t.MatchedNames = []string{name}
		m.index[t.ID] = len(m.trials)
		m.trials = append(m.trials, t)
	}
}

// result returns the merged trials in first-seen order, never nil.
func (m *merger) result() []types.Trial {
	if m.trials == nil {
		return []types.Trial{}
	}
	return m.trials
}
