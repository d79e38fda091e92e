package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/sirupsen/logrus"
)

// NewAccessLogger returns a JSON logrus logger for server request logs.
// Debug raises the level so per-request details are included.
func NewAccessLogger(out io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000000Z07:00"})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Fingerprint returns a short stable tag for identity so logs can be
// correlated without recording the identity itself. Empty input stays empty.
func Fingerprint(identity string) string {
	if identity == "" {
		return ""
	}
	sum := sha256.Sum256([]byte("cipherlab:log:" + identity))
	return hex.EncodeToString(sum[:6])
}
