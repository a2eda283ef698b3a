package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFramesBackToBack(t *testing.T) {
	var buf bytes.Buffer
	payloads := [][]byte{[]byte("first"), {}, bytes.Repeat([]byte{'x'}, 300)}
	for _, p := range payloads {
		if err := WriteFrame(&buf, p); err != nil {
			t.Fatal(err)
		}
	}

	// Hide the ByteReader so the one-byte fallback is used.
	r := struct{ io.Reader }{&buf}
	for i, want := range payloads {
		got, err := ReadFrame(r)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d: expected %d bytes, got %d", i, len(want), len(got))
		}
	}

	if _, err := ReadFrame(r); err != io.EOF {
		t.Errorf("Expected io.EOF at end of stream, got %v", err)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("truncated")); err != nil {
		t.Fatal(err)
	}
	buf.Truncate(buf.Len() - 3)

	if _, err := ReadFrame(&buf); err != io.ErrUnexpectedEOF {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestFrameTooLarge(t *testing.T) {
	if err := WriteFrame(io.Discard, make([]byte, MaxFrameSize+1)); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge on write, got %v", err)
	}

	var buf bytes.Buffer
	if _, err := writeUvarint(&buf, MaxFrameSize+1); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFrame(&buf); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge on read, got %v", err)
	}
}
