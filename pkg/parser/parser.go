package parser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// delimiter brackets the YAML metadata block at the top of a stat log.
const delimiter = "---"

// Parse decodes one stat log into an ordered sample sequence and its
// metadata document.
//
// The file starts with a delimiter line introducing the YAML header;
// lines up to the second delimiter decode as Metadata. The remainder
// is a CSV body whose first record names the columns. The collector
// double-emits the column header, so one additional record is
// discarded before data rows are decoded.
//
// Row-scoped failures are collected as RowErrors and do not abort the
// file; only structural failures (no header terminator, undecodable
// metadata) produce a non-nil error.
func Parse(r io.Reader) (*ParsedLog, []*RowError, error) {
	br := bufio.NewReader(r)

	// Skip the opening delimiter line.
	if _, err := br.ReadString('\n'); err != nil {
		if err == io.EOF {
			return nil, nil, &FormatError{Kind: KindMissingHeaderTerminator}
		}
		return nil, nil, err
	}

	var header strings.Builder
	for {
		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, delimiter) {
			break
		}
		if err == io.EOF {
			return nil, nil, &FormatError{Kind: KindMissingHeaderTerminator}
		}
		if err != nil {
			return nil, nil, err
		}
		header.WriteString(line)
	}

	// Decode into a plain map: yaml.v3 propagates a named map type to
	// nested mappings, which would surface as Metadata instead of
	// map[string]any.
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(header.String()), &meta); err != nil {
		return nil, nil, fmt.Errorf("decoding metadata: %w", err)
	}

	parsed := &ParsedLog{
		Samples:  NewSampleSequence(),
		Metadata: Metadata(meta),
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	columns, err := cr.Read()
	if err == io.EOF {
		// Header-only file: zero data rows is valid.
		return parsed, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading column header: %w", err)
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[strings.TrimSpace(name)] = i
	}

	// Drop the duplicated column header the collector emits.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return parsed, nil, nil
		}
		return nil, nil, fmt.Errorf("reading column header: %w", err)
	}

	var rowErrs []*RowError
	var prevRead int64
	hasPrev := false

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Row: row, Err: err})
			continue
		}

		sample, err := decodeSample(index, rec)
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Row: row, Err: err})
			continue
		}

		// Resolve the preceding-read reference against the sequence
		// built so far.
		if hasPrev {
			if _, ok := parsed.Samples.Lookup(prevRead); ok {
				sample.preRead = prevRead
				sample.hasPre = true
			}
		}

		parsed.Samples.Insert(sample)
		prevRead = sample.Read
		hasPrev = true
	}

	return parsed, rowErrs, nil
}

// ParseFile opens and parses a single stat log file.
func ParseFile(path string) (*ParsedLog, []*RowError, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, nil, fmt.Errorf("opening stat log: %w", err)
	}
	defer f.Close()

	parsed, rowErrs, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return parsed, rowErrs, nil
}

func decodeSample(index map[string]int, rec []string) (*Sample, error) {
	d := &rowDecoder{index: index, rec: rec}

	s := &Sample{
		Read: d.count("read"),
		CPU: CPU{
			Total:             d.count("cpu.usage.total"),
			System:            d.count("cpu.usage.system"),
			User:              d.count("cpu.usage.user"),
			PerCPU:            d.counts("cpu.usage.percpu"),
			StatSystem:        d.count("cpu.stat.system"),
			StatUser:          d.count("cpu.stat.user"),
			ThrottlingPeriods: d.count("cpu.throttling.periods"),
			ThrottledCount:    d.count("cpu.throttling.throttled.count"),
			ThrottledTime:     d.count("cpu.throttling.throttled.time"),
		},
		Memory: Memory{
			UsageCurrent: d.count("memory.usage.current"),
			MaxUsage:     d.count("memory.usage.max"),
			HardLimit:    d.count("memory.limit.hard"),
			SoftLimit:    d.count("memory.limit.soft"),
			Failcnt:      d.count("memory.failcnt"),
			MemoryLimit:  d.count("memory.hierarchical_limit.memory"),
			SwapLimit:    d.count("memory.hierarchical_limit.memoryswap"),
			Cache:        d.count("memory.cache"),
			RSSAll:       d.count("memory.rss.all"),
			RSSHuge:      d.count("memory.rss.huge"),
			Mapped:       d.count("memory.mapped"),
			Swap:         d.count("memory.swap"),
			PagedIn:      d.count("memory.paged.in"),
			PagedOut:     d.count("memory.paged.out"),
			FaultTotal:   d.count("memory.fault.total"),
			FaultMajor:   d.count("memory.fault.major"),
			AnonInactive: d.count("memory.anon.inactive"),
			AnonActive:   d.count("memory.anon.active"),
			FileInactive: d.count("memory.file.inactive"),
			FileActive:   d.count("memory.file.active"),
			Unevictable:  d.count("memory.unevictable"),
		},
		Blkio: Blkio{
			ServiceBytes: d.blkio("blkio.service.bytes"),
			Serviced:     d.blkio("blkio.service.ios"),
			ServiceTime:  d.blkio("blkio.service.time"),
			Queued:       d.blkio("blkio.queued"),
			WaitTime:     d.blkio("blkio.wait"),
			Merged:       d.blkio("blkio.merged"),
			Time:         d.blkio("blkio.time"),
			Sectors:      d.blkio("blkio.sectors"),
		},
		Pids: Pids{
			Current: d.count("pids.current"),
			Max:     d.pidsMax("pids.max"),
		},
	}

	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

// rowDecoder decodes the cells of one CSV record, remembering the
// first failure it hits.
type rowDecoder struct {
	index map[string]int
	rec   []string
	err   error
}

// field returns the raw cell under the named column, or "" when the
// column is absent from this record.
func (d *rowDecoder) field(name string) string {
	i, ok := d.index[name]
	if !ok || i >= len(d.rec) {
		return ""
	}
	return d.rec[i]
}

// count decodes an integer cell with defaulting coercion: empty and
// missing cells decode to 0.
func (d *rowDecoder) count(name string) int64 {
	return d.parse(name, strings.TrimSpace(d.field(name)))
}

func (d *rowDecoder) parse(name, raw string) int64 {
	if d.err != nil || raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.err = &FormatError{Kind: KindInvalidNumericField, Field: name, Value: raw}
		return 0
	}
	return v
}

// counts decodes a space-separated integer list (the per-core cpu
// usage breakdown).
func (d *rowDecoder) counts(name string) []int64 {
	fields := strings.Fields(d.field(name))
	if len(fields) == 0 {
		return nil
	}
	vals := make([]int64, 0, len(fields))
	for _, f := range fields {
		vals = append(vals, d.parse(name, f))
	}
	return vals
}

// pidsMax decodes the pids.max cell, mapping the "max" sentinel
// (unbounded) to 0.
func (d *rowDecoder) pidsMax(name string) int64 {
	raw := strings.TrimSpace(d.field(name))
	if raw == "max" {
		return 0
	}
	return d.parse(name, raw)
}

// blkio decodes a comma-separated list of "major:minor op value"
// sub-entries. Sub-entries that do not split into exactly three
// whitespace tokens and Total rollup entries are dropped silently;
// they are expected noise, not row errors.
func (d *rowDecoder) blkio(name string) []BlkioEntry {
	raw := d.field(name)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var entries []BlkioEntry
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		tokens := strings.Fields(part)
		if len(tokens) != 3 || strings.Contains(part, "Total") {
			continue
		}

		major, minor, ok := strings.Cut(tokens[0], ":")
		if !ok {
			continue
		}

		entries = append(entries, BlkioEntry{
			Major: d.parse(name, major),
			Minor: d.parse(name, minor),
			Op:    tokens[1],
			Value: d.parse(name, tokens[2]),
		})
	}
	return entries
}
