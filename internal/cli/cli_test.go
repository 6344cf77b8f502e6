package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/parkrun-map/internal/course"
	"github.com/pfrederiksen/parkrun-map/internal/mapdata"
	"github.com/pfrederiksen/parkrun-map/internal/shard"
)

// TestRunShardBacked drives the whole command against a local sharded table
// and a pre-seeded venue cache, so nothing touches the network
func TestRunShardBacked(t *testing.T) {
	root := t.TempDir()

	partDir := shard.PartitionPath(root, 42)
	if err := os.MkdirAll(partDir, 0755); err != nil {
		t.Fatalf("creating partition: %v", err)
	}
	part := strings.Join([]string{
		"athlete_id,event_name,country,run_count,personal_best",
		"42,acketts,UK,3,00:19:55",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(partDir, "part-0000.csv"), []byte(part), 0644); err != nil {
		t.Fatalf("writing part file: %v", err)
	}

	courseFile := filepath.Join(t.TempDir(), "course_data.csv")
	store := course.NewFileStore(courseFile)
	_, err := store.AppendAndResort([]course.Venue{
		{EventName: "acketts", Country: "UK", EventTitle: "Acketts parkrun", Latitude: 51.5, Longitude: -0.1},
		{EventName: "other", Country: "UK", EventTitle: "Other parkrun", Latitude: 52.0, Longitude: 0.0},
	})
	if err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--athlete-id", "A42",
		"--course-file", courseFile,
		"--shard-root", root,
		"--format", "json",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var rows []mapdata.MergedRow
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].EventName != "acketts" || rows[0].RunCount != 3 || rows[0].PersonalBest != "19:55" {
		t.Errorf("unexpected acketts row: %+v", rows[0])
	}
	if rows[1].RunCount != 0 || rows[1].PersonalBest != "N/A" {
		t.Errorf("unexpected other row: %+v", rows[1])
	}
}

func TestRunRejectsBadFormat(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--athlete-id", "42", "--format", "yaml"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestRunRejectsInvertedDelays(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--athlete-id", "42", "--min-delay", "5s", "--max-delay", "1s"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for max-delay below min-delay")
	}
}
