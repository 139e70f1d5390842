package tracker

// Snapshot is a full copy of the domain state, used by the export command.
type Snapshot struct {
	Tasks      []Task          `json:"tasks" yaml:"tasks"`
	Protocols  []LifeProtocol  `json:"protocols" yaml:"protocols"`
	Sessions   []CodingSession `json:"sessions" yaml:"sessions"`
	Activities []Activity      `json:"activities" yaml:"activities"`
	Points     int             `json:"points" yaml:"points"`
	Level      int             `json:"level" yaml:"level"`
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Tasks:      t.Tasks(),
		Protocols:  t.Protocols(),
		Sessions:   t.Sessions(),
		Activities: t.Activities(),
		Points:     t.points,
		Level:      t.level,
	}
}
