package operations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "tunnelcli/internal/errors"
	"tunnelcli/internal/files"
)

// ResolveInputs expands the command-line arguments of a sweep into file
// paths. Directories contribute their files with extension ext in natural
// name order; file arguments are kept as given, even when they do not
// exist, so that the sweep reports them as failed files. Only a missing
// directory argument (one ending in a path separator) or an empty result
// fails the whole run. The argument order is preserved.
func ResolveInputs(args []string, ext string) ([]string, error) {
	discovery := files.NewDiscovery("")

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if isDirArg(arg) {
				if os.IsNotExist(err) {
					return nil, apperrors.NewNotFoundError("input directory").WithFile(arg)
				}
				return nil, apperrors.NewStorageError(fmt.Sprintf("stat %s", arg), err)
			}
			paths = append(paths, arg)
			continue
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := discovery.FindDataFiles(arg, ext)
		if err != nil {
			return nil, apperrors.NewStorageError("list measurement files", err).WithFile(arg)
		}
		paths = append(paths, files.Paths(found)...)
	}

	if len(paths) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("measurement files (*%s)", ext))
	}
	return paths, nil
}

func isDirArg(arg string) bool {
	return strings.HasSuffix(arg, "/") || strings.HasSuffix(arg, string(filepath.Separator))
}
