package host

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNoToolchain is returned when native compilation is requested but
// no C toolchain host is wired into this build.
var ErrNoToolchain = errors.New("no host toolchain available")

// Toolchain is the native-compilation host boundary. Self-hosting
// compilation belongs to an external C toolchain; this default adapter
// only reports what it was asked to do and declines.
type Toolchain struct {
	log *logrus.Logger
}

// NewToolchain returns the default (declining) toolchain adapter.
// A nil logger falls back to the standard logrus logger.
func NewToolchain(log *logrus.Logger) *Toolchain {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Toolchain{log: log}
}

// Compile would translate a script into a native binary through the
// named compiler ("tcc" or "gcc"). The default adapter logs the request
// and returns ErrNoToolchain.
func (t *Toolchain) Compile(inputFile, outputFile, compiler string) error {
	t.log.WithFields(logrus.Fields{
		"input":    inputFile,
		"output":   outputFile,
		"compiler": compiler,
	}).Info("native compilation requested")
	return ErrNoToolchain
}
