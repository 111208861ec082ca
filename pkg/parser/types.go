// Package parser decodes rAdvisor container stat logs: a YAML
// front-matter metadata block followed by a CSV body of per-sample
// cgroup statistics.
package parser

import "fmt"

// Metadata is the decoded YAML header of a stat log. Its schema is
// defined by the collector, not by this package, so it is kept as a
// generic tree and consumed read-only.
type Metadata map[string]any

// BlkioEntry is one per-device block I/O statistic.
type BlkioEntry struct {
	// Major and Minor identify the block device.
	Major int64
	Minor int64

	// Op is the operation kind (Read, Write, Sync, Async, ...).
	Op string

	// Value is the statistic counter for this device and operation.
	Value int64
}

// Blkio holds the eight blkio statistic groups of a sample. Aggregate
// "Total" rollup entries are excluded during decoding.
type Blkio struct {
	ServiceBytes []BlkioEntry
	Serviced     []BlkioEntry
	ServiceTime  []BlkioEntry
	Queued       []BlkioEntry
	WaitTime     []BlkioEntry
	Merged       []BlkioEntry
	Time         []BlkioEntry
	Sectors      []BlkioEntry
}

// CPU holds the cpu cgroup counters of a sample.
type CPU struct {
	Total  int64
	System int64
	User   int64

	// PerCPU is the per-core usage breakdown.
	PerCPU []int64

	StatSystem int64
	StatUser   int64

	ThrottlingPeriods int64
	ThrottledCount    int64
	ThrottledTime     int64
}

// Memory holds the memory cgroup counters of a sample. Missing or
// empty source fields decode to 0.
type Memory struct {
	UsageCurrent int64
	MaxUsage     int64
	HardLimit    int64
	SoftLimit    int64
	Failcnt      int64

	// Hierarchical limits.
	MemoryLimit int64
	SwapLimit   int64

	Cache   int64
	RSSAll  int64
	RSSHuge int64
	Mapped  int64
	Swap    int64

	PagedIn  int64
	PagedOut int64

	FaultTotal int64
	FaultMajor int64

	AnonInactive int64
	AnonActive   int64
	FileInactive int64
	FileActive   int64

	Unevictable int64
}

// Pids holds the pids cgroup counters of a sample. An unbounded
// pids.max is represented as 0.
type Pids struct {
	Current int64
	Max     int64
}

// Sample is one timestamped row of cgroup statistics.
type Sample struct {
	// Read is the read timestamp in nanoseconds since an arbitrary
	// epoch. It keys the sample within its sequence.
	Read int64

	CPU    CPU
	Memory Memory
	Blkio  Blkio
	Pids   Pids

	// preRead is the resolved preceding-read key, valid only when
	// hasPre is set. The owning sequence resolves it back to a sample;
	// samples never hold pointers to each other.
	preRead int64
	hasPre  bool
}

// PreRead returns the preceding read timestamp this sample was
// resolved against, and whether one was resolved at all. The first
// sample of a sequence has none.
func (s *Sample) PreRead() (int64, bool) {
	return s.preRead, s.hasPre
}

// RowError is a row-scoped decode failure. The row it describes is
// dropped; parsing of the remaining rows continues.
type RowError struct {
	// Row is the 1-based data row index within the file body.
	Row int

	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParsedLog is the result of parsing one stat log file.
type ParsedLog struct {
	Samples  *SampleSequence
	Metadata Metadata
}
