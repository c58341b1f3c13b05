package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	stdinArg = "-"

	// maxScriptBytes caps how much of a script is read into memory.
	maxScriptBytes = 4 << 20
)

var (
	// ErrDirectoryPath indicates a script path points to a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrScriptTooLarge indicates the script exceeds maxScriptBytes.
	ErrScriptTooLarge = errors.New("script too large")
)

// readInput reads a script from path, or from stdin when path is "-".
// It returns the content and a label naming the source.
func readInput(path string, stdin io.Reader) (content []byte, label string, err error) {
	if path == stdinArg {
		content, err = readLimited(stdin, "stdin")
		if err != nil {
			return nil, "", err
		}

		return content, "stdin", nil
	}

	resolved, err := resolveUserFilePath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	//nolint:gosec // resolved is normalized and existence/type checked in resolveUserFilePath.
	file, err := os.Open(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", resolved, err)
	}

	defer file.Close()

	content, err = readLimited(file, resolved)
	if err != nil {
		return nil, "", err
	}

	return content, path, nil
}

func readLimited(r io.Reader, label string) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxScriptBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", label, err)
	}

	if len(content) > maxScriptBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrScriptTooLarge, label, humanize.IBytes(maxScriptBytes))
	}

	return content, nil
}

func resolveUserFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryPath, absPath)
	}

	return absPath, nil
}
