package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/codediagram/pkg/cache"
	apperrors "github.com/matzehuels/codediagram/pkg/errors"
)

// treeExtension marks input that is already an exported structure tree.
const treeExtension = ".json"

// cacheDir returns the diagram cache directory, honouring XDG_CACHE_HOME
// (~/.cache/codediagram by default on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// outputPath returns explicit when set, otherwise <stem><suffix> next to
// the input file.
func outputPath(input, explicit, suffix string) string {
	if explicit != "" {
		return explicit
	}
	dir, base := filepath.Split(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+suffix)
}

// exportPath returns explicit when set, otherwise <stem>.<format> next to
// the input file.
func exportPath(input, explicit, format string) string {
	return outputPath(input, explicit, "."+format)
}

func isTreeInput(path string) bool {
	return strings.EqualFold(filepath.Ext(path), treeExtension)
}

// readInput validates path and returns its contents.
func readInput(path string) ([]byte, error) {
	if err := apperrors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
