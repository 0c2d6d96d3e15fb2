package presentation

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"garmail/internal/domain"
)

func sampleCandidates() []domain.ActivityFile {
	base := time.Date(2024, 10, 2, 9, 0, 0, 0, time.Local)
	return []domain.ActivityFile{
		{Name: "a.fit", ModTime: base, Size: 1024},
		{Name: "b.fit", ModTime: base.Add(time.Hour), Size: 2048},
		{Name: "c.fit", ModTime: base.Add(2 * time.Hour), Size: 512},
	}
}

func TestPickCandidatesByOrdinal(t *testing.T) {
	picked := pickCandidates(sampleCandidates(), "1, 3", false)
	if len(picked) != 2 {
		t.Fatalf("expected 2 files, got %d", len(picked))
	}
	if picked[0].Name != "a.fit" || picked[1].Name != "c.fit" {
		t.Fatalf("wrong pick: %v", picked)
	}
}

func TestPickCandidatesAll(t *testing.T) {
	if len(pickCandidates(sampleCandidates(), "all", false)) != 3 {
		t.Fatal("expected all files")
	}
}

func TestPickCandidatesEmptyAnswer(t *testing.T) {
	if got := pickCandidates(sampleCandidates(), "", false); got != nil {
		t.Fatalf("expected no pick, got %v", got)
	}
	if got := pickCandidates(sampleCandidates(), "  ", true); len(got) != 3 {
		t.Fatalf("expected preselection kept, got %v", got)
	}
}

func TestPickCandidatesIgnoresJunk(t *testing.T) {
	picked := pickCandidates(sampleCandidates(), "0,2,2,9,x", false)
	if len(picked) != 1 || picked[0].Name != "b.fit" {
		t.Fatalf("expected only b.fit, got %v", picked)
	}
}

func TestChoosePromptsAndReads(t *testing.T) {
	var out bytes.Buffer
	p := Printer{Writer: &out, Reader: strings.NewReader("2\n")}

	picked := p.choose(sampleCandidates(), false)
	if len(picked) != 1 || picked[0].Name != "b.fit" {
		t.Fatalf("wrong pick: %v", picked)
	}
	if !strings.Contains(out.String(), "1. a.fit") {
		t.Fatalf("expected numbered listing, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Select files") {
		t.Fatal("expected prompt")
	}
}
