package expand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Stale is an output whose content differs from the expansion of its input.
type Stale struct {
	Result *Result
	// Diff is a unified diff from the file on disk to the expansion.
	Diff string
}

// Check compares each error-free result with its output on disk.
func Check(results []*Result) ([]Stale, error) {
	var stale []Stale

	for _, res := range results {
		if res.Diagnostics.HasErrors() {
			continue
		}

		diff, err := Diff(res)
		if err != nil {
			return nil, err
		}

		if diff != "" {
			stale = append(stale, Stale{Result: res, Diff: diff})
		}
	}

	return stale, nil
}

// Diff returns the unified diff from the output on disk to res.Content, or
// "" when they are equal. A missing output diffs against /dev/null.
func Diff(res *Result) (string, error) {
	from := res.Output

	var a []string

	old, err := os.ReadFile(res.Output)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		from = "/dev/null"
	case err != nil:
		return "", fmt.Errorf("reading output %s: %w", res.Output, err)
	case string(old) == res.Content:
		return "", nil
	default:
		a = difflib.SplitLines(string(old))
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        difflib.SplitLines(res.Content),
		FromFile: from,
		ToFile:   res.Output,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", res.Output, err)
	}

	return diff, nil
}
