package hub

import (
	"context"
	"testing"

	"github.com/steveyegge/observe/internal/types"
)

func TestWriteAndReadReport(t *testing.T) {
	h, _ := newTestHub(t)
	ctx := context.Background()

	body := []byte("# Pipeline Analysis Report\n\nall clear\n")
	if err := h.WriteReport(ctx, "analysis-20260825-100000.md", body); err != nil {
		t.Fatalf("WriteReport() = %v", err)
	}

	got, err := h.ReadReport(ctx, "analysis-20260825-100000.md")
	if err != nil {
		t.Fatalf("ReadReport() = %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("ReadReport() = %q, want %q", got, body)
	}

	// Reports are immutable: the same filename never writes twice.
	err = h.WriteReport(ctx, "analysis-20260825-100000.md", []byte("overwrite attempt"))
	if err == nil {
		t.Fatal("WriteReport(same name) = nil, want ConflictError")
	}
	if !types.IsConflict(err) {
		t.Errorf("WriteReport(same name) returned %T: %v", err, err)
	}
}

func TestWriteReportRejectsPathnames(t *testing.T) {
	h, _ := newTestHub(t)

	err := h.WriteReport(context.Background(), "../escape.md", []byte("x"))
	if err == nil {
		t.Fatal("WriteReport(path with separator) = nil, want ValidationError")
	}
	if !types.IsValidation(err) {
		t.Errorf("WriteReport(path with separator) returned %T", err)
	}
}

func TestListReports(t *testing.T) {
	h, _ := newTestHub(t)
	ctx := context.Background()

	names := []string{
		"analysis-20260825-110000.md",
		"analysis-20260825-090000.md",
		"analysis-20260825-100000.md",
	}
	for _, name := range names {
		if err := h.WriteReport(ctx, name, []byte("report")); err != nil {
			t.Fatalf("WriteReport(%s) = %v", name, err)
		}
	}

	got, err := h.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports() = %v", err)
	}
	want := []string{
		"analysis-20260825-090000.md",
		"analysis-20260825-100000.md",
		"analysis-20260825-110000.md",
	}
	if len(got) != len(want) {
		t.Fatalf("ListReports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListReports()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadReportNotFound(t *testing.T) {
	h, _ := newTestHub(t)

	_, err := h.ReadReport(context.Background(), "analysis-29991231-000000.md")
	if err == nil {
		t.Fatal("ReadReport(missing) = nil, want NotFoundError")
	}
	if !types.IsNotFound(err) {
		t.Errorf("ReadReport(missing) returned %T", err)
	}
}
