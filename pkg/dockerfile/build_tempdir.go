package dockerfile

import (
	"os"
	"time"

	"github.com/mediaforge/ffbuild/pkg/util/console"
)

// BuildTempDir creates an empty directory to use as a build context. The returned
// cleanup removes it and must be called on every exit path.
func BuildTempDir() (dir string, cleanup func(), err error) {
	// dir ends up being something like $TMPDIR/ffbuild20240620123456.000000123
	now := time.Now().Format("20060102150405.000000")
	dir, err = os.MkdirTemp("", "ffbuild"+now)
	if err != nil {
		return "", nil, err
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			console.Warnf("Failed to remove build directory %s: %s", dir, err)
		}
	}, nil
}
