package monitor

// SessionStats counts manually logged trade outcomes for the running
// session. Nothing is persisted; a restart zeroes the counters.
type SessionStats struct {
	Wins   int
	Losses int
}

func (s SessionStats) Total() int {
	return s.Wins + s.Losses
}

// WinRate returns the win percentage, 0 when nothing was logged yet.
func (s SessionStats) WinRate() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Wins) / float64(total) * 100
}
