package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

func encode[T any](records []T) ([]byte, error) {
	encoded, err := binary.Marshal(records)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decode[T any](bbCompressed []byte) ([]T, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := binary.Unmarshal(bb, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
