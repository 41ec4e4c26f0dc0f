package tagutils_test

import (
	"bytes"
	"testing"

	"github.com/jpalus/taglib/internal/tagtest"
	"github.com/jpalus/taglib/internal/tagutils"
)

func TestReplaceSameLength(t *testing.T) {
	t.Parallel()

	stream := tagtest.NewMem([]byte("HEADxxxxTAIL"))

	if err := tagutils.Replace(stream, 4, 4, []byte("YYYY")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if got := string(stream.Bytes()); got != "HEADYYYYTAIL" {
		t.Errorf("got %q", got)
	}
}

func TestReplaceGrows(t *testing.T) {
	t.Parallel()

	stream := tagtest.NewMem([]byte("HEADxxTAIL"))

	if err := tagutils.Replace(stream, 4, 2, []byte("LONGERDATA")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if got := string(stream.Bytes()); got != "HEADLONGERDATATAIL" {
		t.Errorf("got %q", got)
	}
}

func TestReplaceShrinks(t *testing.T) {
	t.Parallel()

	stream := tagtest.NewMem([]byte("HEADxxxxxxxxTAIL"))

	if err := tagutils.Replace(stream, 4, 8, []byte("Y")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if got := string(stream.Bytes()); got != "HEADYTAIL" {
		t.Errorf("got %q", got)
	}
}

func TestReplaceAcrossChunkBoundary(t *testing.T) {
	t.Parallel()

	// Exercise shiftTailRight/Left across the 32KiB internal chunk size.
	tail := bytes.Repeat([]byte{'T'}, 70*1024)
	data := append([]byte("HEAD"), tail...)

	stream := tagtest.NewMem(data)

	newBlock := bytes.Repeat([]byte{'N'}, 100)
	if err := tagutils.Replace(stream, 0, 4, newBlock); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got := stream.Bytes()
	if !bytes.Equal(got[:100], newBlock) {
		t.Error("new block not written at start")
	}

	if !bytes.Equal(got[100:], tail) {
		t.Error("tail corrupted across chunk boundary")
	}
}

func TestReplaceRejectsReadOnly(t *testing.T) {
	t.Parallel()

	stream := tagtest.ReadOnlyMem([]byte("HEADxxxxTAIL"))

	err := tagutils.Replace(stream, 4, 4, []byte("YYYY"))
	if err == nil {
		t.Fatal("expected an error on a read-only stream")
	}
}

func TestReplaceRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	stream := tagtest.NewMem([]byte("short"))

	if err := tagutils.Replace(stream, 0, 100, []byte("x")); err == nil {
		t.Error("expected an error replacing beyond stream length")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	stream := tagtest.NewMem([]byte("HEADtrailing"))

	if err := tagutils.Truncate(stream, 4); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	if got := string(stream.Bytes()); got != "HEAD" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateRejectsReadOnly(t *testing.T) {
	t.Parallel()

	stream := tagtest.ReadOnlyMem([]byte("HEADtrailing"))

	if err := tagutils.Truncate(stream, 4); err == nil {
		t.Fatal("expected an error on a read-only stream")
	}
}
