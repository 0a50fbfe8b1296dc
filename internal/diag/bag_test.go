package diag

import (
	"testing"

	"entail/internal/source"
)

func TestBagLimitAndQueries(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewWarning(RewriteNotImplied, source.Span{Start: 4, End: 5}, "w")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "e")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 9, End: 9}, "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
	if got := len(bag.Errors()); got != 1 {
		t.Errorf("Errors() = %d, want 1", got)
	}
	if got := len(bag.Warnings()); got != 1 {
		t.Errorf("Warnings() = %d, want 1", got)
	}

	bag.Sort()
	if bag.Items()[0].Message != "e" {
		t.Errorf("sort by start failed: first is %q", bag.Items()[0].Message)
	}
}

func TestBagUnlimitedMergeDedup(t *testing.T) {
	a := NewBag(0)
	b := NewBag(0)
	d := NewWarning(RewriteNotImplied, source.Span{Start: 1, End: 3}, "same")
	a.Add(d)
	b.Add(d)
	b.Add(NewWarning(RewriteNoneFound, source.Span{Start: 1, End: 3}, "other"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Len() = %d after merge", a.Len())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Fatalf("Len() = %d after dedup, want 2", a.Len())
	}
}

func TestBagReporter(t *testing.T) {
	bag := NewBag(0)
	ReportError(BagReporter{Bag: bag}, ArgDuplicate, source.Span{Start: 3, End: 8}, "duplicate arg").
		WithNote(source.Span{Start: 0, End: 2}, "first here").
		Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	got := bag.Items()[0]
	if got.Code != ArgDuplicate || !got.IsError() || len(got.Notes) != 1 {
		t.Errorf("unexpected diagnostic: %+v", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		ArgDuplicate:       "ARG3002",
		RewriteNotImplied:  "IMP4001",
		PrjBadConfig:       "PRJ5002",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
