// Package textio reads and writes newline-delimited UTF-8 text files.
package textio

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// ReadLines returns the non-empty lines of a file. A trailing carriage
// return is removed from every line.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tterr.Wrap(err, tterr.CodeNotFound, "file not found").WithDetail("path", path)
		}
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to open file").WithDetail("path", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to read file").WithDetail("path", path)
	}
	return lines, nil
}

// WriteLines replaces path with one line per item
func WriteLines(path string, lines []string) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := w.WriteLine(line); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// Exists reports whether path is an existing regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// LineWriter streams lines to a file
type LineWriter struct {
	f     *os.File
	buf   *bufio.Writer
	path  string
	count int
}

// Create truncates or creates path, creating parent directories as needed
func Create(path string) (*LineWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to create directory").WithDetail("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to create file").WithDetail("path", path)
	}
	return &LineWriter{f: f, buf: bufio.NewWriter(f), path: path}, nil
}

// WriteLine writes line followed by a newline
func (w *LineWriter) WriteLine(line string) error {
	if _, err := w.buf.WriteString(line); err != nil {
		return tterr.Wrap(err, tterr.CodeIO, "failed to write line").WithDetail("path", w.path)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return tterr.Wrap(err, tterr.CodeIO, "failed to write line").WithDetail("path", w.path)
	}
	w.count++
	return nil
}

// Count returns the number of lines written so far
func (w *LineWriter) Count() int {
	return w.count
}

// Close flushes and closes the file
func (w *LineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return tterr.Wrap(err, tterr.CodeIO, "failed to flush file").WithDetail("path", w.path)
	}
	if err := w.f.Close(); err != nil {
		return tterr.Wrap(err, tterr.CodeIO, "failed to close file").WithDetail("path", w.path)
	}
	return nil
}
