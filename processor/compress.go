package processor

import (
	"github.com/golang/snappy"
)

func CompressLog(data []byte) []byte {
	return snappy.Encode(nil, data)
}

func DecompressLog(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}
