package typegen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/shapeshare/errors"
)

// CheckResult holds the result of a generated-code check
type CheckResult struct {
	UpToDate bool
	// Differences lists files (relative to the checked dir) that differ
	Differences []string
	// Missing lists generated files that do not exist on disk yet
	Missing []string
}

// CompareDirectories compares freshly generated files in generatedDir with
// the committed files in existingDir. Version header lines are ignored so a
// generator upgrade alone does not fail the check.
func CompareDirectories(generatedDir, existingDir string) (*CheckResult, error) {
	result := &CheckResult{}

	err := filepath.Walk(generatedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}

		existingPath := filepath.Join(existingDir, relPath)
		if _, err := os.Stat(existingPath); os.IsNotExist(err) {
			result.Missing = append(result.Missing, relPath)
			return nil
		}

		different, err := filesAreDifferent(path, existingPath)
		if err != nil {
			return err
		}
		if different {
			result.Differences = append(result.Differences, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "compare %s with %s", generatedDir, existingDir)
	}

	sort.Strings(result.Differences)
	sort.Strings(result.Missing)
	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0
	return result, nil
}

// filesAreDifferent compares two files, ignoring version header lines.
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}

	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}

	if bytes.Equal(content1, content2) {
		return false, nil
	}

	lines1, err := filterHeaderLines(content1)
	if err != nil {
		return false, errors.Wrapf(err, "scan %s", file1)
	}
	lines2, err := filterHeaderLines(content2)
	if err != nil {
		return false, errors.Wrapf(err, "scan %s", file2)
	}
	return lines1 != lines2, nil
}

// filterHeaderLines removes the " * Generated by shapeshare <version>" line,
// the only line that changes between generator versions.
func filterHeaderLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "* Generated by shapeshare") {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}
