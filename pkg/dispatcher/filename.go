package dispatcher

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-qrform/pkg/style"
)

// Filename returns the download name for an image. A blank name becomes
// "QR-" plus six characters of a random UUID; the format's extension is
// appended unless name already ends with it.
func Filename(name string, format style.Format) string {
	name = strings.TrimSpace(name)
	if name == "" {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		name = "QR-" + id[:3] + id[len(id)-3:]
	}
	ext := format.Extension()
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}
