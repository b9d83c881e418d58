package exifreader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const maxChunkSize = 64 << 20

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	exifHeader   = []byte("Exif\x00\x00")
)

// pngExif returns the payload of the eXIf chunk, or nil if there is none.
func pngExif(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, fmt.Errorf("read png signature: %w", err)
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, fmt.Errorf("%w: bad png signature", ErrUnsupportedFormat)
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(br, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("read png chunk header: %w", err)
		}
		length := binary.BigEndian.Uint32(hdr[:4])
		switch string(hdr[4:]) {
		case "eXIf":
			return readChunk(br, length)
		case "IEND":
			return nil, nil
		}
		// data + CRC
		if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
			return nil, fmt.Errorf("skip png chunk %q: %w", hdr[4:], err)
		}
	}
}

// webpExif returns the payload of the RIFF EXIF chunk, or nil if there is none.
func webpExif(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	var hdr [12]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("read riff header: %w", err)
	}
	if string(hdr[:4]) != "RIFF" || string(hdr[8:]) != "WEBP" {
		return nil, fmt.Errorf("%w: bad webp header", ErrUnsupportedFormat)
	}

	var ch [8]byte
	for {
		if _, err := io.ReadFull(br, ch[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("read riff chunk header: %w", err)
		}
		size := binary.LittleEndian.Uint32(ch[4:])
		if string(ch[:4]) == "EXIF" {
			return readChunk(br, size)
		}
		// chunks are padded to an even size
		if _, err := io.CopyN(io.Discard, br, int64(size)+int64(size&1)); err != nil {
			return nil, fmt.Errorf("skip riff chunk %q: %w", ch[:4], err)
		}
	}
}

func readChunk(r io.Reader, length uint32) ([]byte, error) {
	if length > maxChunkSize {
		return nil, fmt.Errorf("exif chunk too large: %d bytes", length)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read exif chunk: %w", err)
	}
	return bytes.TrimPrefix(data, exifHeader), nil
}
