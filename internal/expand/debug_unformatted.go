package expand

import (
	"os"
	"strings"
)

// unformattedPath names the sidecar of an output file.
func unformattedPath(path string) string {
	return strings.TrimSuffix(path, ".rs") + ".unformatted.rs"
}

// writeDebugUnformatted writes the text rustfmt rejected next to the output,
// so the offending expansion can be inspected with the formatter's error.
func writeDebugUnformatted(path string, content []byte) error {
	if path == "" {
		return nil
	}

	return os.WriteFile(unformattedPath(path), content, filePerm)
}

// removeDebugUnformatted deletes a sidecar left by an earlier run.
func removeDebugUnformatted(path string) error {
	err := os.Remove(unformattedPath(path))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
