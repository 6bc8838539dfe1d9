package service

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/emzola/bookstore/data"
	"github.com/gabriel-vasile/mimetype"
)

// MaxCoverSize is the largest cover image accepted, in bytes.
const MaxCoverSize = 2 << 20

// readUpload reads at most limit bytes from r and detects their mime type.
func readUpload(r io.Reader, limit int64) ([]byte, *mimetype.MIME, error) {
	buffer, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, nil, err
	}
	if int64(len(buffer)) > limit {
		return nil, nil, ErrContentTooLarge
	}
	return buffer, mimetype.Detect(buffer), nil
}

// objectKey returns a random storage key under the folder of scope.
func objectKey(scope, filename string, mtype *mimetype.MIME) (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mtype.Extension()
	}
	name := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes))
	switch scope {
	case data.ScopeCover:
		return "bookcovers/" + name + ext, nil
	default:
		return scope + "/" + name + ext, nil
	}
}

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}

// sendEmail delivers an email in the background. Failures are only logged.
func (s *service) sendEmail(recipient, templateFile string, data map[string]any) {
	s.background(func() {
		err := s.mailer.Send(recipient, templateFile, data)
		if err != nil {
			s.logger.PrintError(err, map[string]string{
				"recipient": recipient,
				"template":  templateFile,
			})
		}
	})
}
