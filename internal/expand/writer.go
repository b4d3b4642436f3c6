package expand

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is an expanded file ready to be written.
type GeneratedFile struct {
	Path    string
	Content []byte
	// Unformatted is set when formatting failed and holds the text that
	// was handed to the formatter.
	Unformatted []byte
}

// WriteFiles writes all generated files, creating parent directories as
// needed. With sidecar, a file that failed formatting also gets a
// `.unformatted.rs` copy next to it; a stale copy is removed otherwise.
func WriteFiles(files []GeneratedFile, sidecar bool) error {
	for _, file := range files {
		err := os.MkdirAll(filepath.Dir(file.Path), dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(file.Path, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path, err)
		}

		if sidecar && file.Unformatted != nil {
			err = writeDebugUnformatted(file.Path, file.Unformatted)
		} else {
			err = removeDebugUnformatted(file.Path)
		}

		if err != nil {
			return fmt.Errorf("updating unformatted copy of %s: %w", file.Path, err)
		}
	}

	return nil
}
