package discovery

import (
	"bytes"
	"io"
	"os"
)

// binarySniffSize is how much of a file is inspected for NUL bytes.
const binarySniffSize = 8192

// IsBinary detects if content is binary by checking the first 8KB for null bytes.
func IsBinary(content []byte) bool {
	if len(content) > binarySniffSize {
		content = content[:binarySniffSize]
	}
	return bytes.IndexByte(content, 0) != -1
}

// IsBinaryFile reports whether the file at path looks binary. Unreadable files count
// as binary.
func IsBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binarySniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	return IsBinary(buf[:n])
}
