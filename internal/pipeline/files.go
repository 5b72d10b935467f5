package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// CollectFiles expands each argument into workbook paths: directories
// contribute their non-recursive .xlsx entries, plain files are kept as
// given. A missing path is an error for the whole call.
func CollectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return files, nil
}
