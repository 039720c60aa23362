package cli

import "ctp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Pipelined  bool
	NameFilter string
	Simulator  string
	ShowFails  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Pipelined:  f.Pipelined,
		NameFilter: f.NameFilter,
		Simulator:  f.Simulator,
		ShowFails:  f.ShowFails,
	}
}
