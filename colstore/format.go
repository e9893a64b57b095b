package colstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/RoyMachineLearning/SparkGBM/internal/conv"
)

const (
	// FormatMagic identifies bin-column files (ASCII: "GBM1").
	FormatMagic uint32 = 0x47424D31

	// FormatVersion is the current file format version.
	FormatVersion uint32 = 1

	// HeaderSize is the size of the file header in bytes.
	HeaderSize = 64
)

// Column block layouts.
const (
	layoutDense  byte = 0
	layoutSparse byte = 1
)

// columnHeaderSize is the fixed prefix of a decoded column block:
// layout, valueWidth, indexWidth, reserved, size uint64, count uint64.
const columnHeaderSize = 4 + 8 + 8

var (
	// ErrInvalidMagic is returned when a file has an invalid magic number.
	ErrInvalidMagic = errors.New("colstore: invalid magic number")

	// ErrInvalidVersion is returned when a file has an unsupported version.
	ErrInvalidVersion = errors.New("colstore: unsupported format version")

	// ErrCorrupted is returned when a file fails checksum or structural validation.
	ErrCorrupted = errors.New("colstore: file corrupted")

	// ErrValueWidth is returned when the stored value width does not match
	// the requested element type.
	ErrValueWidth = errors.New("colstore: value width mismatch")

	// ErrRaggedColumns is returned when columns written together differ in size.
	ErrRaggedColumns = errors.New("colstore: columns differ in size")

	// ErrColumnOutOfRange is returned when a column index is out of range.
	ErrColumnOutOfRange = errors.New("colstore: column index out of range")
)

// fileHeader is the 64-byte header at the start of bin-column files.
//
// All multi-byte fields are little-endian. Checksum covers the first 48
// bytes of the encoded header.
type fileHeader struct {
	Magic       uint32
	Version     uint32
	Flags       uint32
	Compression uint32
	Columns     uint32
	Rows        uint64
	TOCOffset   uint64
	DataOffset  uint64
	Checksum    uint32
}

func (h *fileHeader) encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], h.Compression)
	binary.LittleEndian.PutUint32(buf[16:20], h.Columns)
	binary.LittleEndian.PutUint64(buf[24:32], h.Rows)
	binary.LittleEndian.PutUint64(buf[32:40], h.TOCOffset)
	binary.LittleEndian.PutUint64(buf[40:48], h.DataOffset)
	h.Checksum = crc32.ChecksumIEEE(buf[:48])
	binary.LittleEndian.PutUint32(buf[48:52], h.Checksum)
	return buf
}

func decodeHeader(data []byte) (fileHeader, error) {
	var h fileHeader
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: %d bytes, want at least %d", ErrCorrupted, len(data), HeaderSize)
	}
	h.Magic = binary.LittleEndian.Uint32(data[0:4])
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.Flags = binary.LittleEndian.Uint32(data[8:12])
	h.Compression = binary.LittleEndian.Uint32(data[12:16])
	h.Columns = binary.LittleEndian.Uint32(data[16:20])
	h.Rows = binary.LittleEndian.Uint64(data[24:32])
	h.TOCOffset = binary.LittleEndian.Uint64(data[32:40])
	h.DataOffset = binary.LittleEndian.Uint64(data[40:48])
	h.Checksum = binary.LittleEndian.Uint32(data[48:52])

	if h.Magic != FormatMagic {
		return h, ErrInvalidMagic
	}
	if h.Version > FormatVersion {
		return h, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if crc32.ChecksumIEEE(data[:48]) != h.Checksum {
		return h, fmt.Errorf("%w: header checksum mismatch", ErrCorrupted)
	}
	if _, err := conv.Uint64ToInt(h.Rows); err != nil {
		return h, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return h, nil
}
