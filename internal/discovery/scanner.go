package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner expands test search paths into circuit files
type Scanner struct{}

// NewScanner creates a new Scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan expands each search path into circuit files. A file argument is
// included when it carries the .circ extension and silently ignored
// otherwise; a directory is walked recursively for .circ files. All matches
// are merged and sorted ascending by path.
func (s *Scanner) Scan(paths []string) ([]string, error) {
	var circuits []string

	for _, root := range paths {
		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("test path does not exist: %s", root)
		}

		if !info.IsDir() {
			if strings.HasSuffix(root, ".circ") {
				circuits = append(circuits, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(d.Name(), ".circ") {
				circuits = append(circuits, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(circuits)
	return circuits, nil
}
