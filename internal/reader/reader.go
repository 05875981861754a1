// Package reader loads the raw input file and resolves its encoding.
// Everything past this boundary works with already-decoded text lines.
package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/mwhitfield/salespipe/internal/common"
)

// headerPrefix identifies an optional header row in the input file.
const headerPrefix = "TransactionID|"

// FileReader implements the LineReader collaborator over the local
// filesystem.
type FileReader struct{}

// New creates a FileReader.
func New() *FileReader {
	return &FileReader{}
}

// ReadLines implements service.LineReader.
func (f *FileReader) ReadLines(path string) ([]string, error) {
	return ReadLines(path)
}

// ReadLines reads the input file, resolving the encoding with a
// utf-8 -> windows-1252 -> latin-1 fallback chain. Blank lines and a
// leading header row are dropped. A missing file is fatal: the run cannot
// proceed without input.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}

	text, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInputUnreadable, err)
	}

	var lines []string
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, headerPrefix) {
			continue
		}
		lines = append(lines, line)
	}

	slog.Info("Read input file",
		"path", path,
		"encoding", encoding,
		"lines", len(lines))

	return lines, nil
}

// decode tries each supported encoding in order and returns the first
// clean decode along with the encoding name.
func decode(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	// Windows-1252 leaves a replacement rune for its few undefined bytes;
	// treat that as a failed decode and fall through.
	if text, err := charmap.Windows1252.NewDecoder().String(string(data)); err == nil && !strings.ContainsRune(text, utf8.RuneError) {
		return text, "windows-1252", nil
	}

	// Latin-1 defines every byte, so this final fallback cannot fail.
	text, err := charmap.ISO8859_1.NewDecoder().String(string(data))
	if err != nil {
		return "", "", err
	}
	return text, "latin-1", nil
}
