package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

const DefaultMaxBytes int64 = 25 << 20

var (
	ErrEmpty       = errors.New("audio is empty")
	ErrTooLarge    = errors.New("audio exceeds the upload limit")
	ErrUnsupported = errors.New("unsupported audio format")
	ErrBadDataURL  = errors.New("malformed audio data url")
)

var extensionTypes = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
}

var typeExtensions = map[string]string{
	"audio/mp3":    ".mp3",
	"audio/mpeg":   ".mp3",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/ogg":    ".ogg",
	"audio/webm":   ".webm",
	"video/webm":   ".webm",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
}

// FromUpload reads one multipart audio file, up to maxBytes.
func FromUpload(fh *multipart.FileHeader, maxBytes int64) (domain.AudioPayload, error) {
	if fh == nil {
		return domain.AudioPayload{}, ErrEmpty
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if fh.Size > maxBytes {
		return domain.AudioPayload{}, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return domain.AudioPayload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return FromReader(fh.Filename, f, maxBytes)
}

// FromReader reads r fully and resolves the MIME type from the filename extension,
// falling back to content sniffing.
func FromReader(filename string, r io.Reader, maxBytes int64) (domain.AudioPayload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return domain.AudioPayload{}, fmt.Errorf("read audio: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return domain.AudioPayload{}, ErrTooLarge
	}
	if len(data) == 0 {
		return domain.AudioPayload{}, ErrEmpty
	}
	name := filepath.Base(strings.TrimSpace(filename))
	mime, err := resolveType(name, data)
	if err != nil {
		return domain.AudioPayload{}, err
	}
	if name == "" || name == "." {
		name = "recording" + typeExtensions[mime]
	}
	return domain.AudioPayload{Filename: name, MIMEType: mime, Data: data}, nil
}

// FromDataURL decodes a browser recording of the form data:audio/<x>;base64,<payload>.
func FromDataURL(s string, maxBytes int64) (domain.AudioPayload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return domain.AudioPayload{}, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return domain.AudioPayload{}, ErrBadDataURL
	}
	params := strings.Split(meta, ";")
	if len(params) < 2 || params[len(params)-1] != "base64" {
		return domain.AudioPayload{}, ErrBadDataURL
	}
	mime := strings.ToLower(strings.TrimSpace(params[0]))
	if base64.StdEncoding.DecodedLen(len(payload)) > int(maxBytes)+3 {
		return domain.AudioPayload{}, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return domain.AudioPayload{}, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	if int64(len(data)) > maxBytes {
		return domain.AudioPayload{}, ErrTooLarge
	}
	if len(data) == 0 {
		return domain.AudioPayload{}, ErrEmpty
	}
	ext, known := typeExtensions[mime]
	if !known {
		if !strings.HasPrefix(mime, "audio/") {
			return domain.AudioPayload{}, fmt.Errorf("%w: %s", ErrUnsupported, mime)
		}
		ext = ".bin"
	}
	return domain.AudioPayload{Filename: "recording" + ext, MIMEType: mime, Data: data}, nil
}

func resolveType(filename string, data []byte) (string, error) {
	if mime, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mime, nil
	}
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") {
			return normalizeType(m.String()), nil
		}
	}
	if detected.Is("video/webm") {
		return "audio/webm", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, detected.String())
}

func normalizeType(mime string) string {
	mime = strings.ToLower(mime)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	switch mime {
	case "audio/mpeg":
		return "audio/mp3"
	case "audio/x-wav", "audio/wave":
		return "audio/wav"
	case "audio/x-m4a":
		return "audio/mp4"
	case "audio/x-flac":
		return "audio/flac"
	}
	return mime
}

// Extension returns the file suffix used when staging audio of the given MIME type.
func Extension(mime string) string {
	if ext, ok := typeExtensions[strings.ToLower(mime)]; ok {
		return ext
	}
	return ".bin"
}
