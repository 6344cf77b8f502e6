package shard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pfrederiksen/parkrun-map/internal/event"
)

// IDDigits is the zero-padded width of the athlete-id suffix used for
// partitioning. Four digits gives 10,000 partitions, matching the scheme
// the table was written with; reads must use the identical width or they
// land in the wrong partition.
const IDDigits = 4

// partColumns is the column contract of the partitioned athlete table
var partColumns = []string{"athlete_id", "event_name", "country", "run_count", "personal_best"}

// PartitionPath returns the single partition directory holding rows for the
// given athlete id: one nested level per digit of the zero-padded 4-digit id
// suffix, most significant of the suffix first. Athlete 42 maps to
// .../athlete_id_digit_-4=0/athlete_id_digit_-3=0/athlete_id_digit_-2=4/athlete_id_digit_-1=2.
func PartitionPath(tableRoot string, athleteID int) string {
	padded := fmt.Sprintf("%0*d", IDDigits, athleteID)

	path := tableRoot
	for digit := -IDDigits; digit < 0; digit++ {
		path = filepath.Join(path, fmt.Sprintf("athlete_id_digit_%d=%c", digit, padded[len(padded)+digit]))
	}
	return path
}

// Read loads the one partition addressed by the athlete id's trailing
// digits and filters it down to rows for exactly that athlete. Other
// athletes sharing the same 4-digit suffix live in the same partition, so
// the filter is not redundant.
func Read(athleteID int, tableRoot string) ([]event.Record, error) {
	partDir := PartitionPath(tableRoot, athleteID)

	parts, err := filepath.Glob(filepath.Join(partDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing partition %s: %w", partDir, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no part files in partition %s", partDir)
	}

	var records []event.Record
	for _, part := range parts {
		rows, err := readPartFile(part, athleteID)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}

	return records, nil
}

// readPartFile reads one CSV part file, keeping only the given athlete's rows
func readPartFile(path string, athleteID int) ([]event.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening part file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading part file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []event.Record
	for i, row := range rows[1:] { // skip header
		if len(row) != len(partColumns) {
			return nil, fmt.Errorf("part file %s row %d: expected %d columns, got %d", path, i+2, len(partColumns), len(row))
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("part file %s row %d: invalid athlete id %q", path, i+2, row[0])
		}
		if id != athleteID {
			continue
		}

		runCount, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("part file %s row %d: invalid run count %q", path, i+2, row[3])
		}

		records = append(records, event.Record{
			EventName:    row[1],
			Country:      row[2],
			RunCount:     runCount,
			PersonalBest: event.NormalizeTime(row[4]),
		})
	}

	return records, nil
}
