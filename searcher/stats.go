package searcher

import "time"

// DecisionRecord describes one Decide call. Depth is the number of fully
// completed iterative deepening iterations.
type DecisionRecord struct {
	Depth   int
	Elapsed time.Duration
	Score   float64
	SearchMetrics
}

// Stats is the ordered history of decisions since the agent was initialized.
type Stats struct {
	records []DecisionRecord
}

func (s *Stats) Record(record DecisionRecord) {
	s.records = append(s.records, record)
}

func (s *Stats) Reset() {
	s.records = nil
}

func (s *Stats) Len() int {
	return len(s.records)
}

// Records returns a copy of the history in call order.
func (s *Stats) Records() []DecisionRecord {
	return append([]DecisionRecord(nil), s.records...)
}

func (s *Stats) FirstDepth() (int, error) {
	if len(s.records) == 0 {
		return 0, ErrNoDecisions
	}
	return s.records[0].Depth, nil
}

func (s *Stats) MeanDepth() (float64, error) {
	if len(s.records) == 0 {
		return 0, ErrNoDecisions
	}
	sum := 0
	for _, r := range s.records {
		sum += r.Depth
	}
	return float64(sum) / float64(len(s.records)), nil
}

// MeanSeconds is the mean wall time of a decision in seconds.
func (s *Stats) MeanSeconds() (float64, error) {
	if len(s.records) == 0 {
		return 0, ErrNoDecisions
	}
	var sum time.Duration
	for _, r := range s.records {
		sum += r.Elapsed
	}
	return sum.Seconds() / float64(len(s.records)), nil
}
