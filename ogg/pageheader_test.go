package ogg_test

import (
	"testing"

	"github.com/jpalus/taglib/ogg"
)

func TestParseHeaderRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, _, ok := ogg.ParseHeader([]byte("too short")); ok {
		t.Error("expected failure on short input")
	}

	bad := make([]byte, ogg.FixedHeaderSize)
	copy(bad, "NOPE")

	if _, _, ok := ogg.ParseHeader(bad); ok {
		t.Error("expected failure on bad capture pattern")
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	t.Parallel()

	h := ogg.PageHeader{
		Version:           0,
		Continued:         false,
		LastPageOfStream:  false,
		GranulePosition:   12345,
		SerialNumber:      0xAABBCCDD,
		SequenceNumber:    7,
		LacingValues:      ogg.BuildLacing(300),
	}

	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}

	rendered := h.Render(payload)

	got, total, ok := ogg.ParseHeader(rendered)
	if !ok {
		t.Fatal("expected rendered header to parse")
	}

	if total != h.Size() {
		t.Errorf("total: got %d, want %d", total, h.Size())
	}

	if got.SerialNumber != h.SerialNumber || got.SequenceNumber != h.SequenceNumber {
		t.Errorf("got %+v", got)
	}

	if got.GranulePosition != 12345 {
		t.Errorf("GranulePosition: got %d", got.GranulePosition)
	}

	if len(got.LacingValues) != len(h.LacingValues) {
		t.Errorf("lacing length: got %d, want %d", len(got.LacingValues), len(h.LacingValues))
	}
}

func TestRenderSetsFirstPageBitFromSequenceZero(t *testing.T) {
	t.Parallel()

	// Render derives FirstPageOfStream from SequenceNumber == 0, regardless
	// of the struct's own FirstPageOfStream field -- the documented
	// asymmetry against ParseHeader, preserved rather than reconciled.
	h := ogg.PageHeader{SequenceNumber: 0, LacingValues: ogg.BuildLacing(0)}

	rendered := h.Render(nil)

	got, _, ok := ogg.ParseHeader(rendered)
	if !ok {
		t.Fatal("expected rendered header to parse")
	}

	if !got.FirstPageOfStream {
		t.Error("expected FirstPageOfStream bit to be set when SequenceNumber == 0")
	}

	h2 := ogg.PageHeader{SequenceNumber: 1, LacingValues: ogg.BuildLacing(0)}
	got2, _, _ := ogg.ParseHeader(h2.Render(nil))

	if got2.FirstPageOfStream {
		t.Error("expected FirstPageOfStream bit to be clear when SequenceNumber != 0")
	}
}

func TestPacketSizesSinglePacket(t *testing.T) {
	t.Parallel()

	h := ogg.PageHeader{LacingValues: []byte{10}}

	sizes, continues := h.PacketSizes()
	if continues {
		t.Error("did not expect continuation")
	}

	if len(sizes) != 1 || sizes[0] != 10 {
		t.Errorf("got %v", sizes)
	}
}

func TestPacketSizesMultiplePackets(t *testing.T) {
	t.Parallel()

	h := ogg.PageHeader{LacingValues: []byte{255, 10, 5}}

	sizes, continues := h.PacketSizes()
	if continues {
		t.Error("did not expect continuation")
	}

	if len(sizes) != 2 || sizes[0] != 265 || sizes[1] != 5 {
		t.Errorf("got %v", sizes)
	}
}

func TestPacketSizesTrailingContinuation(t *testing.T) {
	t.Parallel()

	h := ogg.PageHeader{LacingValues: []byte{10, 255, 255}}

	sizes, continues := h.PacketSizes()
	if !continues {
		t.Error("expected the final run to continue onto the next page")
	}

	if len(sizes) != 2 || sizes[0] != 10 || sizes[1] != 510 {
		t.Errorf("got %v, want [10 510]", sizes)
	}
}

func TestBuildLacingEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		want []byte
	}{
		{0, []byte{0}},
		{10, []byte{10}},
		{255, []byte{255, 0}},
		{300, []byte{255, 45}},
		{510, []byte{255, 255, 0}},
	}

	for _, tc := range tests {
		got := ogg.BuildLacing(tc.size)
		if len(got) != len(tc.want) {
			t.Errorf("size %d: got %v, want %v", tc.size, got, tc.want)
			continue
		}

		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("size %d: got %v, want %v", tc.size, got, tc.want)
				break
			}
		}
	}
}
