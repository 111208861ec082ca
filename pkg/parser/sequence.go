package parser

// SampleSequence is an insertion-ordered collection of samples keyed
// by read timestamp. Iteration order equals file row order. The
// sequence owns all samples; preceding-read references are resolved
// through it rather than stored as pointers.
type SampleSequence struct {
	order  []int64
	byRead map[int64]*Sample
}

// NewSampleSequence creates an empty sequence.
func NewSampleSequence() *SampleSequence {
	return &SampleSequence{
		byRead: make(map[int64]*Sample),
	}
}

// Insert adds a sample keyed by its read timestamp. Re-inserting an
// existing key replaces the sample but keeps its original position.
func (s *SampleSequence) Insert(sample *Sample) {
	if _, ok := s.byRead[sample.Read]; !ok {
		s.order = append(s.order, sample.Read)
	}
	s.byRead[sample.Read] = sample
}

// Lookup returns the sample with the given read timestamp.
func (s *SampleSequence) Lookup(read int64) (*Sample, bool) {
	sample, ok := s.byRead[read]
	return sample, ok
}

// Len returns the number of samples in the sequence.
func (s *SampleSequence) Len() int {
	return len(s.order)
}

// Reads returns the read timestamps in insertion order.
func (s *SampleSequence) Reads() []int64 {
	reads := make([]int64, len(s.order))
	copy(reads, s.order)
	return reads
}

// Samples returns the samples in insertion order.
func (s *SampleSequence) Samples() []*Sample {
	samples := make([]*Sample, 0, len(s.order))
	for _, read := range s.order {
		samples = append(samples, s.byRead[read])
	}
	return samples
}

// Previous resolves the preceding sample of the given sample, if its
// preceding-read reference was resolvable when it was parsed.
func (s *SampleSequence) Previous(sample *Sample) (*Sample, bool) {
	if !sample.hasPre {
		return nil, false
	}
	return s.Lookup(sample.preRead)
}
