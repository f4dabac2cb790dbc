package audio

import (
	"fmt"
	"os"
	"sync"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

// Stage writes the payload to a temp file named with the payload's audio suffix.
// The returned cleanup removes the file; it is safe to call more than once.
func Stage(p domain.AudioPayload) (path string, cleanup func(), err error) {
	if p.Empty() {
		return "", func() {}, ErrEmpty
	}
	f, err := os.CreateTemp("", "speechcoach-*"+Extension(p.MIMEType))
	if err != nil {
		return "", func() {}, fmt.Errorf("stage audio: %w", err)
	}
	path = f.Name()
	var once sync.Once
	cleanup = func() {
		once.Do(func() { _ = os.Remove(path) })
	}
	if _, err := f.Write(p.Data); err != nil {
		_ = f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("stage audio: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("stage audio: %w", err)
	}
	return path, cleanup, nil
}
