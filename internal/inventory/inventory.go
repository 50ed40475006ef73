// Package inventory parses line-oriented host inventories.
//
// An inventory is comma-separated text with one "hostname,address" record per
// line. Comment lines start with '#', blank lines are ignored. Parsing is
// tolerant: malformed content never aborts the run, it is collected as
// diagnostics instead.
package inventory

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
)

// Record is one validated inventory entry. It is immutable once constructed.
type Record struct {
	Hostname string
	Address  string
}

// Reason classifies why a line was rejected.
type Reason string

const (
	// ReasonMalformedLine marks a line that could not be split into a
	// hostname and an address.
	ReasonMalformedLine Reason = "malformed-line"
	// ReasonInvalidAddress marks a line whose address field is not a valid
	// IPv4 or IPv6 literal.
	ReasonInvalidAddress Reason = "invalid-address"
)

// Diagnostic describes one rejected inventory line.
type Diagnostic struct {
	Line    int
	Raw     string
	Reason  Reason
	Message string
}

// maxLineSize bounds a single inventory line. Lines are short in practice;
// the limit only exists so the scanner does not grow without bound.
const maxLineSize = 1 << 20

// Parse reads the inventory and returns valid records and diagnostics, both
// in input order. Every line resolves to a record, a diagnostic, or a silent
// skip; malformed content never fails Parse. The returned error is non-nil
// only when the source itself could not be read to the end.
//
// Per line:
//   - whitespace-only lines are skipped
//   - lines whose first field starts with '#' after trimming are comments
//   - with two or more comma-separated fields, the first two are used and the
//     rest ignored
//   - a single field is split once on the first comma as a fallback for
//     delimiter-quoting edge cases; if no comma is present the line is
//     malformed
//   - an empty hostname or address after trimming drops the line as noise
//   - the address must parse as an IPv4 or IPv6 literal (no resolution)
func Parse(r io.Reader) ([]Record, []Diagnostic, error) {
	var records []Record
	var diags []Diagnostic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		fields := splitFields(raw)
		if len(fields) == 0 {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(fields[0]), "#") {
			continue
		}

		var hostname, address string
		if len(fields) >= 2 {
			hostname = strings.TrimSpace(fields[0])
			address = strings.TrimSpace(fields[1])
		} else {
			// Single field: the delimiter may have been swallowed by
			// quoting. Split once on the first comma.
			parts := strings.SplitN(fields[0], ",", 2)
			if len(parts) != 2 {
				diags = append(diags, Diagnostic{
					Line:    line,
					Raw:     raw,
					Reason:  ReasonMalformedLine,
					Message: "expected 'hostname,address'",
				})
				continue
			}
			hostname = strings.TrimSpace(parts[0])
			address = strings.TrimSpace(parts[1])
		}

		// Empty fields are dropped as noise, not diagnosed.
		if hostname == "" || address == "" {
			continue
		}

		if _, err := netip.ParseAddr(address); err != nil {
			diags = append(diags, Diagnostic{
				Line:    line,
				Raw:     raw,
				Reason:  ReasonInvalidAddress,
				Message: fmt.Sprintf("invalid address: %s", address),
			})
			continue
		}

		records = append(records, Record{Hostname: hostname, Address: address})
	}

	if err := scanner.Err(); err != nil {
		return records, diags, fmt.Errorf("failed to read inventory: %w", err)
	}

	return records, diags, nil
}

// ParseFile opens path and parses it. The returned error only concerns the
// source being unreadable; malformed content is reported via diagnostics.
func ParseFile(path string) ([]Record, []Diagnostic, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	defer f.Close()

	records, diags, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	return records, diags, nil
}

// splitFields tokenizes one physical line as CSV. LazyQuotes keeps parity
// with permissive readers so a stray quote yields a single field instead of
// an error; anything the CSV reader still rejects falls back to the raw line.
func splitFields(line string) []string {
	reader := csv.NewReader(strings.NewReader(line))
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if err != nil {
		return []string{line}
	}
	return fields
}
