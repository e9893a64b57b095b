// Package colstore persists sets of bin-vector columns as a single binary
// file: a checksummed fixed-size header, a table of per-column offsets, and
// one optionally compressed block per column.
//
// The format preserves vectors structurally: a decoded column has the same
// Size and the same At(i) for every position as the column that was written.
// The physical layout of each block (dense or sparse) is re-chosen from the
// column's density at write time, and sparse index widths are re-selected on
// decode, so byte layout is not part of the round-trip contract.
//
// Bin values are non-negative by construction upstream; the fixed-width
// value encoding relies on that and does not sign-extend.
package colstore

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"unsafe"

	"github.com/RoyMachineLearning/SparkGBM/binvec"
	"github.com/RoyMachineLearning/SparkGBM/internal/conv"
	"github.com/RoyMachineLearning/SparkGBM/internal/mmap"
)

// Option configures Write.
type Option func(*writeOptions)

type writeOptions struct {
	compression Compression
}

// WithCompression selects the block compression algorithm.
// The default is CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *writeOptions) {
		o.compression = c
	}
}

// Write encodes cols into w. All columns must have the same size.
func Write[V binvec.Integer](w io.Writer, cols []binvec.BinVector[V], opts ...Option) error {
	o := writeOptions{compression: CompressionNone}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.compression.valid() {
		return fmt.Errorf("colstore: unknown compression %d", o.compression)
	}

	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Size()
	}
	for j, col := range cols {
		if col.Size() != rows {
			return fmt.Errorf("%w: column %d has size %d, want %d", ErrRaggedColumns, j, col.Size(), rows)
		}
	}

	columns, err := conv.IntToUint32(len(cols))
	if err != nil {
		return fmt.Errorf("colstore: %w", err)
	}
	rows64, err := conv.IntToUint64(rows)
	if err != nil {
		return fmt.Errorf("colstore: %w", err)
	}

	blocks := make([][]byte, len(cols))
	for j, col := range cols {
		block, err := compressBlock(encodeColumn(col), o.compression)
		if err != nil {
			return err
		}
		blocks[j] = block
	}

	tocOff := uint64(HeaderSize)
	dataOff := tocOff + 8*uint64(len(cols))

	// TOC and blocks form the checksummed body.
	body := make([]byte, 0, int(dataOff)-HeaderSize)
	off := dataOff
	for _, block := range blocks {
		body = binary.LittleEndian.AppendUint64(body, off)
		off += uint64(len(block))
	}
	for _, block := range blocks {
		body = append(body, block...)
	}

	h := fileHeader{
		Magic:       FormatMagic,
		Version:     FormatVersion,
		Compression: uint32(o.compression),
		Columns:     columns,
		Rows:        rows64,
		TOCOffset:   tocOff,
		DataOffset:  dataOff,
	}
	if _, err := w.Write(h.encode()); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], crc32.ChecksumIEEE(body))
	_, err = w.Write(trailer[:])
	return err
}

// Read decodes every column from data, verifying the body checksum.
func Read[V binvec.Integer](data []byte) ([]binvec.BinVector[V], error) {
	h, toc, err := parseFile(data)
	if err != nil {
		return nil, err
	}

	body := data[h.TOCOffset : len(data)-4]
	want := binary.LittleEndian.Uint32(data[len(data)-4:])
	if crc32.ChecksumIEEE(body) != want {
		return nil, fmt.Errorf("%w: body checksum mismatch", ErrCorrupted)
	}

	cols := make([]binvec.BinVector[V], len(toc))
	for j := range toc {
		cols[j], err = readColumnAt[V](data, h, toc, j)
		if err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// ReadColumn decodes the single column j from data.
//
// Unlike Read it skips the whole-body checksum, so random access stays
// proportional to the size of one column.
func ReadColumn[V binvec.Integer](data []byte, j int) (binvec.BinVector[V], error) {
	h, toc, err := parseFile(data)
	if err != nil {
		return nil, err
	}
	if j < 0 || j >= len(toc) {
		return nil, fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, j, len(toc))
	}
	return readColumnAt[V](data, h, toc, j)
}

// NumColumns reports the number of columns stored in data.
func NumColumns(data []byte) (int, error) {
	_, toc, err := parseFile(data)
	if err != nil {
		return 0, err
	}
	return len(toc), nil
}

// File is a column file opened through a read-only memory mapping.
type File struct {
	m *mmap.Mapping
}

// Open maps the column file at path.
func Open(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	if _, _, err := parseFile(m.Bytes()); err != nil {
		_ = m.Close()
		return nil, err
	}
	return &File{m: m}, nil
}

// Data returns the mapped file contents, suitable for Read and ReadColumn.
// The slice is valid only until Close.
func (f *File) Data() []byte {
	return f.m.Bytes()
}

// Close releases the mapping.
func (f *File) Close() error {
	return f.m.Close()
}

func parseFile(data []byte) (fileHeader, []uint64, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return h, nil, err
	}
	if !Compression(h.Compression).valid() {
		return h, nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupted, h.Compression)
	}

	tocEnd := h.TOCOffset + 8*uint64(h.Columns)
	if h.TOCOffset < HeaderSize || tocEnd > h.DataOffset || h.DataOffset+4 > uint64(len(data)) {
		return h, nil, fmt.Errorf("%w: section offsets out of range", ErrCorrupted)
	}

	toc := make([]uint64, h.Columns)
	for j := range toc {
		off := binary.LittleEndian.Uint64(data[h.TOCOffset+8*uint64(j):])
		if off < h.DataOffset || off+blockHeaderSize > uint64(len(data))-4 {
			return h, nil, fmt.Errorf("%w: column %d offset out of range", ErrCorrupted, j)
		}
		toc[j] = off
	}
	return h, toc, nil
}

func readColumnAt[V binvec.Integer](data []byte, h fileHeader, toc []uint64, j int) (binvec.BinVector[V], error) {
	payload, _, err := decompressBlock(data[toc[j]:len(data)-4], Compression(h.Compression))
	if err != nil {
		return nil, fmt.Errorf("column %d: %w", j, err)
	}
	col, err := decodeColumn[V](payload, h.Rows)
	if err != nil {
		return nil, fmt.Errorf("column %d: %w", j, err)
	}
	return col, nil
}

// encodeColumn serializes a column block: a 20-byte column header followed by
// either size values (dense) or count indices then count values (sparse).
// The cheaper layout wins.
func encodeColumn[V binvec.Integer](col binvec.BinVector[V]) []byte {
	size := col.Size()
	var zero V
	vw := int(unsafe.Sizeof(zero))

	var (
		indices []int
		values  []V
	)
	for i, v := range col.Active() {
		indices = append(indices, i)
		values = append(values, v)
	}

	iw := 1
	if n := len(indices); n > 0 {
		iw = indexWidth(indices[n-1])
	}

	if len(indices)*(iw+vw) < size*vw {
		buf := make([]byte, columnHeaderSize, columnHeaderSize+len(indices)*(iw+vw))
		buf[0] = layoutSparse
		buf[1] = byte(vw)
		buf[2] = byte(iw)
		binary.LittleEndian.PutUint64(buf[4:12], uint64(size))
		binary.LittleEndian.PutUint64(buf[12:20], uint64(len(indices)))
		buf = appendFixed(buf, indices, iw)
		buf = appendFixed(buf, values, vw)
		return buf
	}

	buf := make([]byte, columnHeaderSize, columnHeaderSize+size*vw)
	buf[0] = layoutDense
	buf[1] = byte(vw)
	binary.LittleEndian.PutUint64(buf[4:12], uint64(size))
	binary.LittleEndian.PutUint64(buf[12:20], uint64(size))
	for _, v := range col.Total() {
		buf = appendFixedValue(buf, v, vw)
	}
	return buf
}

func decodeColumn[V binvec.Integer](payload []byte, rows uint64) (binvec.BinVector[V], error) {
	if len(payload) < columnHeaderSize {
		return nil, fmt.Errorf("%w: truncated column header", ErrCorrupted)
	}
	layout := payload[0]
	vw := int(payload[1])
	iw := int(payload[2])

	size, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(payload[4:12]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	count, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(payload[12:20]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if uint64(size) != rows {
		return nil, fmt.Errorf("%w: column size %d does not match row count %d", ErrCorrupted, size, rows)
	}

	var zero V
	if vw != int(unsafe.Sizeof(zero)) {
		return nil, fmt.Errorf("%w: stored width %d, element width %d", ErrValueWidth, vw, unsafe.Sizeof(zero))
	}

	rest := payload[columnHeaderSize:]
	switch layout {
	case layoutDense:
		if count != size || len(rest) != size*vw {
			return nil, fmt.Errorf("%w: dense payload size", ErrCorrupted)
		}
		return binvec.Dense(decodeFixed[V](rest, size, vw)), nil
	case layoutSparse:
		if iw != 1 && iw != 2 && iw != 4 {
			return nil, fmt.Errorf("%w: index width %d", ErrCorrupted, iw)
		}
		if len(rest) != count*(iw+vw) {
			return nil, fmt.Errorf("%w: sparse payload size", ErrCorrupted)
		}
		indices := decodeFixed[int](rest[:count*iw], count, iw)
		values := decodeFixed[V](rest[count*iw:], count, vw)
		col, err := binvec.Sparse(size, indices, values)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
		return col, nil
	default:
		return nil, fmt.Errorf("%w: unknown layout %d", ErrCorrupted, layout)
	}
}

// indexWidth mirrors the sparse factory's width thresholds.
func indexWidth(maxIdx int) int {
	switch {
	case maxIdx <= 0x7F:
		return 1
	case maxIdx <= 0x7FFF:
		return 2
	default:
		return 4
	}
}

func appendFixed[T binvec.Integer](buf []byte, vals []T, width int) []byte {
	for _, v := range vals {
		buf = appendFixedValue(buf, v, width)
	}
	return buf
}

func appendFixedValue[T binvec.Integer](buf []byte, v T, width int) []byte {
	u := uint64(v)
	for b := 0; b < width; b++ {
		buf = append(buf, byte(u>>(8*b)))
	}
	return buf
}

func decodeFixed[T binvec.Integer](data []byte, count, width int) []T {
	out := make([]T, count)
	for i := range out {
		var u uint64
		off := i * width
		for b := 0; b < width; b++ {
			u |= uint64(data[off+b]) << (8 * b)
		}
		out[i] = T(u)
	}
	return out
}
