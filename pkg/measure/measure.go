package measure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
)

// Parse reads measurements from r, one hex string per non-blank line, and
// returns them in file order. Every measurement must decode to the same bit
// length; a shorter or longer line is a capture fault, not something to
// silently truncate around.
func Parse(r io.Reader) ([]bitstring.Bits, error) {
	var out []bitstring.Bits
	scanner := bufio.NewScanner(r)
	// SRAM dumps run to tens of kilobits, far past the default line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := bitstring.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(out) > 0 && b.Len() != out[0].Len() {
			return nil, fmt.Errorf("line %d: %w: %d bits, expected %d",
				lineNo, bitstring.ErrLengthMismatch, b.Len(), out[0].Len())
		}
		out = append(out, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading measurements: %w", err)
	}
	return out, nil
}

// ReadFile reads a measurement file from disk.
func ReadFile(path string) ([]bitstring.Bits, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening measurement file: %w", err)
	}
	defer f.Close()

	ms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// Device is one device's measurements for cross-device comparison, named
// after its measurement file.
type Device struct {
	Name         string
	Measurements []bitstring.Bits
}

// ReadDir reads every regular file in dir as a per-device measurement file,
// sorted by filename. Uniqueness analysis compares the first measurement of
// each device, so files for different devices may have different bit
// lengths; lengths are only enforced within a file.
func ReadDir(dir string) ([]Device, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading measurement directory: %w", err)
	}

	var devices []Device
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ms, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if len(ms) == 0 {
			continue
		}
		devices = append(devices, Device{Name: e.Name(), Measurements: ms})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	return devices, nil
}
