package intronret

import (
	"os"

	"github.com/carbocation/pfx"
)

// Open opens a local file for reading, expanding ~ first. Callers own the
// returned file and must close it.
func Open(path string) (*os.File, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
