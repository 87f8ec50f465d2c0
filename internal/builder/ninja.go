package builder

import (
	"io"
	"os"
	"strings"
)

// ninjaQuoteSentinel parks escaped quotes while path separators are
// rewritten. The byte cannot appear in a generated build.ninja.
const ninjaQuoteSentinel = "\x01"

// PatchNinjaBuildFile rewrites the build file at path in place, converting
// path-separator backslashes to forward slashes. Escaped quote sequences
// (\") appear inside macro definitions such as -DVERSION=\"0.0.1\" and must
// not be corrupted, so they are swapped onto a sentinel byte first and
// restored after the conversion. The rewrite is length-preserving, so the
// file is overwritten with a plain seek and write.
func PatchNinjaBuildFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	patched := string(data)
	patched = strings.ReplaceAll(patched, `\"`, ninjaQuoteSentinel)
	patched = strings.ReplaceAll(patched, `\`, "/")
	patched = strings.ReplaceAll(patched, ninjaQuoteSentinel, `\"`)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.WriteString(f, patched); err != nil {
		return err
	}
	return f.Close()
}
