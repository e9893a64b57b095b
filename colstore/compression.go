package colstore

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm for column payloads.
type Compression uint32

const (
	// CompressionNone stores column blocks uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, decent ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, slower).
	CompressionZSTD Compression = 2
)

func (c Compression) valid() bool {
	return c <= CompressionZSTD
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block container: [uncompressedSize uint32][compressedSize uint32][data].
// compressedSize == 0 means the data is stored raw.
const blockHeaderSize = 8

// compressBlock wraps data in a block container, compressing it with the
// given algorithm. Blocks that do not compress well are stored raw.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		buf := make([]byte, bound)
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("colstore: lz4 compress: %w", err)
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("colstore: unknown compression %d", c)
	}

	// lz4 reports 0 for incompressible input; also fall back when the ratio
	// is not worth the decode cost.
	if len(compressed) == 0 || len(compressed) >= len(data) {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:4], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:8], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

// decompressBlock unwraps a block container produced by compressBlock and
// returns the original bytes along with the total container length consumed.
func decompressBlock(data []byte, c Compression) ([]byte, int, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, fmt.Errorf("%w: truncated block", ErrCorrupted)
	}
	uncompressedSize := int(binary.LittleEndian.Uint32(data[0:4]))
	compressedSize := int(binary.LittleEndian.Uint32(data[4:8]))

	if compressedSize == 0 {
		end := blockHeaderSize + uncompressedSize
		if end > len(data) {
			return nil, 0, fmt.Errorf("%w: truncated block payload", ErrCorrupted)
		}
		return data[blockHeaderSize:end], end, nil
	}

	end := blockHeaderSize + compressedSize
	if end > len(data) {
		return nil, 0, fmt.Errorf("%w: truncated block payload", ErrCorrupted)
	}
	payload := data[blockHeaderSize:end]

	switch c {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: lz4 decompress: %v", ErrCorrupted, err)
		}
		if n != uncompressedSize {
			return nil, 0, fmt.Errorf("%w: lz4 size mismatch", ErrCorrupted)
		}
		return out, end, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: zstd decompress: %v", ErrCorrupted, err)
		}
		if len(out) != uncompressedSize {
			return nil, 0, fmt.Errorf("%w: zstd size mismatch", ErrCorrupted)
		}
		return out, end, nil
	default:
		return nil, 0, fmt.Errorf("%w: compressed block with compression %d", ErrCorrupted, c)
	}
}
