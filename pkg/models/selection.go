package models

// TempoRange is an inclusive [Min, Max] interval in BPM.
type TempoRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether bpm lies inside the range. NaN is never contained.
func (r TempoRange) Contains(bpm float64) bool {
	return bpm >= r.Min && bpm <= r.Max
}

// Selection is the user's current filter state.
type Selection struct {
	Keys  []string   `json:"keys"`
	Tempo TempoRange `json:"tempo"`
}

// KeySet returns the selected key names as a lookup set.
func (s Selection) KeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Keys))
	for _, k := range s.Keys {
		set[k] = struct{}{}
	}
	return set
}
