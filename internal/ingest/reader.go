// Package ingest walks a source directory of compressed NDJSON feed files
// and dispatches each record to the matching domain service.
package ingest

import (
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds a single NDJSON line. Transaction payloads carry
// nested purchase lines but stay well under this.
const maxLineSize = 10 << 20

// readLines decompresses the file and calls fn for every newline-delimited
// record. A file that is not actually gzip fails on open, before any record
// is delivered.
func readLines(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip %s: %w", path, err)
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
