package shared

import (
	"bytes"
	"compress/gzip"
	"io"
)

//Compress compresses reader content with gzip
func Compress(reader io.Reader) (*bytes.Buffer, error) {
	buffer := new(bytes.Buffer)
	writer := gzip.NewWriter(buffer)
	if _, err := io.Copy(writer, reader); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buffer, nil
}

//Decompress decompresses gzip reader content
func Decompress(reader io.Reader) ([]byte, error) {
	gzReader, err := gzip.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer gzReader.Close()
	return io.ReadAll(gzReader)
}
