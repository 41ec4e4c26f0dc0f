package ogg

import (
	"fmt"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
	"github.com/jpalus/taglib/internal/tagutils"
)

// maxPagePayload is the largest payload a single page's 255-entry segment
// table can describe (255 segments * 255 bytes).
const maxPagePayload = 255 * 255

// File is the shared Ogg logical-bitstream coordinator: it reads the
// first headerPacketCount packets of a stream (the identification and
// comment headers, and for Vorbis the setup header too), keeps them
// addressable and replaceable in memory, and splices the file on Save.
// Everything after the header packets -- the audio packets -- is left
// untouched except for a single shared page boundary (see trailing
// fields below).
type File struct {
	stream taglib.Stream

	serial        uint32
	startSeq      uint32
	headerPackets [][]byte

	// trailingLacing/trailingPayload preserve bytes that shared the final
	// header page with the start of the audio stream -- common when a
	// small first audio packet is laced onto the same page as the setup
	// header. They are re-emitted verbatim as their own page after the
	// rebuilt header pages, rather than re-parsed, since nothing in this
	// package needs to interpret audio packets.
	trailingLacing  []byte
	trailingPayload []byte
	trailingGranule int64

	regionStart int64
	regionEnd   int64
	length      int64
}

type pageScan struct {
	header    PageHeader
	payload   []byte
	totalSize int64
}

func readPage(rs taglib.Stream, offset int64) (pageScan, bool, error) {
	prefix, err := tagio.ReadAt(rs, offset, FixedHeaderSize)
	if err != nil {
		return pageScan{}, false, nil //nolint:nilerr // truncated/absent page absorbed per spec.md §7
	}

	if string(prefix[0:4]) != capturePattern {
		return pageScan{}, false, nil
	}

	segments := int(prefix[26])
	total := FixedHeaderSize + segments

	full, err := tagio.ReadAt(rs, offset, total)
	if err != nil {
		return pageScan{}, false, nil //nolint:nilerr
	}

	header, headerSize, ok := ParseHeader(full)
	if !ok {
		return pageScan{}, false, nil
	}

	payloadLen := 0
	for _, v := range header.LacingValues {
		payloadLen += int(v)
	}

	payload, err := tagio.ReadAt(rs, offset+int64(headerSize), payloadLen)
	if err != nil {
		return pageScan{}, false, nil //nolint:nilerr
	}

	return pageScan{header: header, payload: payload, totalSize: int64(headerSize) + int64(payloadLen)}, true, nil
}

// Open reads the first headerPacketCount packets of the first logical
// bitstream found at the start of stream.
func Open(stream taglib.Stream, headerPacketCount int) (*File, error) {
	f := &File{stream: stream}

	if err := f.read(headerPacketCount); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) read(headerPacketCount int) error {
	length, err := f.stream.Len()
	if err != nil {
		return fmt.Errorf("getting length: %w", err)
	}

	f.length = length

	var packets [][]byte

	var current []byte

	offset := int64(0)
	firstPage := true

	for len(packets) < headerPacketCount {
		page, ok, err := readPage(f.stream, offset)
		if err != nil {
			return err
		}

		if !ok {
			return taglib.ErrNotRecognized
		}

		if firstPage {
			f.serial = page.header.SerialNumber
			f.startSeq = page.header.SequenceNumber
			f.regionStart = offset
			firstPage = false
		}

		pos := 0
		segIdx := 0
		doneThisPage := false

		for segIdx < len(page.header.LacingValues) {
			v := page.header.LacingValues[segIdx]
			current = append(current, page.payload[pos:pos+int(v)]...)
			pos += int(v)
			segIdx++

			if v < 255 {
				packets = append(packets, current)
				current = nil

				if len(packets) == headerPacketCount {
					doneThisPage = true

					break
				}
			}
		}

		offset += page.totalSize

		if doneThisPage && segIdx < len(page.header.LacingValues) {
			f.trailingLacing = append([]byte(nil), page.header.LacingValues[segIdx:]...)
			f.trailingPayload = append([]byte(nil), page.payload[pos:]...)
			f.trailingGranule = page.header.GranulePosition
		}

		if offset >= length && len(packets) < headerPacketCount {
			return taglib.ErrNotRecognized
		}
	}

	f.regionEnd = offset
	f.headerPackets = packets

	return nil
}

// Packet returns the current in-memory bytes of header packet index.
func (f *File) Packet(index int) []byte {
	return f.headerPackets[index]
}

// SetPacket replaces header packet index's bytes; call Save to persist.
func (f *File) SetPacket(index int, data []byte) {
	f.headerPackets[index] = data
}

// Save re-paginates the header packets and splices the result over the
// file region they originally occupied.
func (f *File) Save() error {
	pages := packPages(f.headerPackets, f.serial, f.startSeq)
	nextSeq := f.startSeq + uint32(len(pages)) //nolint:gosec // page counts are bounded by realistic file sizes

	if len(f.trailingPayload) > 0 || len(f.trailingLacing) > 0 {
		trailer := PageHeader{
			SerialNumber:    f.serial,
			SequenceNumber:  nextSeq,
			GranulePosition: f.trailingGranule,
			LacingValues:    f.trailingLacing,
		}
		pages = append(pages, trailer.Render(f.trailingPayload))
	}

	var region []byte
	for _, p := range pages {
		region = append(region, p...)
	}

	headerPacketCount := len(f.headerPackets)

	if err := tagutils.Replace(f.stream, f.regionStart, f.regionEnd-f.regionStart, region); err != nil {
		return err
	}

	return f.read(headerPacketCount)
}

// packPages lays out packets one per page (splitting only a packet that
// reaches a single page's maximum payload across continuation pages, with
// an empty terminating segment on a final page when the packet size is an
// exact multiple of that payload); small packets are never combined onto
// a shared page. This is simpler than a typical encoder's packing but
// produces a valid bitstream.
func packPages(packets [][]byte, serial uint32, startSeq uint32) [][]byte {
	var pages [][]byte

	seq := startSeq

	for _, packet := range packets {
		remaining := packet
		first := true
		isContinuation := false

		for first || len(remaining) > 0 || isContinuation {
			first = false

			chunk := remaining
			spills := len(chunk) >= maxPagePayload

			var lacing []byte

			if spills {
				chunk = remaining[:maxPagePayload]
				lacing = make([]byte, maxPagePayload/255)

				for i := range lacing {
					lacing[i] = 255
				}
			} else {
				lacing = BuildLacing(len(chunk))
			}

			header := PageHeader{
				SerialNumber:   serial,
				SequenceNumber: seq,
				Continued:      isContinuation,
				LacingValues:   lacing,
			}

			pages = append(pages, header.Render(chunk))
			seq++
			remaining = remaining[len(chunk):]
			isContinuation = spills
		}
	}

	return pages
}
