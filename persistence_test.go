package bfint

import (
	"testing"
	"time"
)

func makePersistence(t *testing.T) *Persistence {
	t.Helper()
	persist, err := NewPersistence(&PersistenceConfig{
		Name: "bfint_test.db",
		Path: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Unexpected failure calling NewPersistence. %v", err)
	}
	return persist
}

func TestNewPersistenceValidation(t *testing.T) {
	if _, err := NewPersistence(nil); err == nil {
		t.Errorf("Unexpected success with nil config")
	}

	if _, err := NewPersistence(&PersistenceConfig{Name: "x.db"}); err == nil {
		t.Errorf("Unexpected success with empty path")
	} else if err.Error() != "Path to database must be defined" {
		t.Errorf("Error string doesn't match: %v", err)
	}

	if _, err := NewPersistence(&PersistenceConfig{Path: "/tmp"}); err == nil {
		t.Errorf("Unexpected success with empty name")
	} else if err.Error() != "Name of database must be defined" {
		t.Errorf("Error string doesn't match: %v", err)
	}
}

func TestSaveAndLoadReports(t *testing.T) {
	persist := makePersistence(t)
	defer persist.Shutdown()

	report := &RunReport{
		SourcePath:           "hello.bf",
		MemoryCellCount:      30000,
		ProgramLength:        42,
		Result:               RunOk.String(),
		InstructionsExecuted: 987,
		OutputByteCount:      14,
		DurationMicros:       time.Millisecond.Microseconds(),
	}

	id, err := persist.SaveReport(report)

	if err != nil {
		t.Fatalf("Unexpected failure calling SaveReport. %v", err)
	}

	if id == 0 {
		t.Errorf("SaveReport returned zero id")
	}

	if _, err := persist.SaveReport(&RunReport{SourcePath: "other.bf", Result: RunMemoryAccessError.String()}); err != nil {
		t.Fatalf("Unexpected failure saving second report. %v", err)
	}

	reports, err := persist.RecentReports(10)

	if err != nil {
		t.Fatalf("Unexpected failure calling RecentReports. %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("Expected [2] reports, got [%d]", len(reports))
	}

	// Newest first.
	if reports[0].SourcePath != "other.bf" || reports[1].SourcePath != "hello.bf" {
		t.Errorf("Reports out of order: [%s], [%s]", reports[0].SourcePath, reports[1].SourcePath)
	}

	if reports[1].InstructionsExecuted != 987 || reports[1].OutputByteCount != 14 {
		t.Errorf("Loaded report doesn't match saved: %+v", reports[1])
	}
}

func TestSaveNilReport(t *testing.T) {
	persist := makePersistence(t)
	defer persist.Shutdown()

	if _, err := persist.SaveReport(nil); err == nil {
		t.Errorf("Unexpected success saving nil report")
	} else if err.Error() != "RunReport cannot be nil" {
		t.Errorf("Error string doesn't match: %v", err)
	}
}
