package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kotoedoff/zenith/internal/lexer"
)

// DefaultModulePath is the fixed system directory searched first by
// import. It is not an environment variable; embedders override it with
// WithModulePath.
const DefaultModulePath = "/usr/local/lib/zenith/modules"

// FileSystem is the filesystem host capability consumed by read, write,
// exists, delete and mkdir.
type FileSystem interface {
	Read(path string) (string, error)
	Write(path, content string) error
	Exists(path string) bool
	Delete(path string) error
	Mkdir(path string) error
}

// Crypto is the cryptographic host capability consumed by hash,
// encrypt, decrypt and salt.
type Crypto interface {
	Hash(data, algorithm string) string
	Encrypt(data, key string) (string, error)
	Decrypt(data, key string) (string, error)
	Salt(length int) string
}

// HTTPServer is the file-server host capability behind start/stop
// server statements. Start returns once the server is accepting on a
// background worker; Stop joins it.
type HTTPServer interface {
	Start(port int, root string) error
	Stop() error
	Running() bool
}

// Graphics is the windowing host capability. CreateWindow returns an
// opaque handle; the drawing calls are best-effort and never fail the
// script.
type Graphics interface {
	CreateWindow(title string, width, height int, useOpenGL bool) (int, error)
	Clear(handle, r, g, b int)
	Rect(handle, x, y, w, h, r, g, b, a int)
	Circle(handle, cx, cy, radius, r, g, b, a int)
	Render(handle int)
}

// Interp is one interpreter instance. It bundles the variable table,
// the function and module registries, the return/break/continue flags
// and the host capabilities, so embedders and tests construct isolated
// interpreters instead of sharing process globals.
type Interp struct {
	env     *Environment
	funcs   map[string]*FunctionValue
	modules map[string]*ModuleValue

	stdout io.Writer
	stdin  *bufio.Reader

	modulePath string

	fs     FileSystem
	crypto Crypto
	http   HTTPServer
	gfx    Graphics

	returnVal    Value
	isReturning  bool
	isBreaking   bool
	isContinuing bool
}

// Option configures an Interp.
type Option func(*Interp)

// WithStdout directs script output (print, prompts, runtime error
// lines) to w.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) { in.stdout = w }
}

// WithStdin sets the reader behind input(...).
func WithStdin(r io.Reader) Option {
	return func(in *Interp) { in.stdin = bufio.NewReader(r) }
}

// WithModulePath overrides the module search directory.
func WithModulePath(path string) Option {
	return func(in *Interp) { in.modulePath = path }
}

// WithFileSystem sets the filesystem host capability.
func WithFileSystem(fs FileSystem) Option {
	return func(in *Interp) { in.fs = fs }
}

// WithCrypto sets the cryptographic host capability.
func WithCrypto(c Crypto) Option {
	return func(in *Interp) { in.crypto = c }
}

// WithHTTPServer sets the file-server host capability.
func WithHTTPServer(s HTTPServer) Option {
	return func(in *Interp) { in.http = s }
}

// WithGraphics sets the windowing host capability.
func WithGraphics(g Graphics) Option {
	return func(in *Interp) { in.gfx = g }
}

// New creates an interpreter writing to os.Stdout and reading from
// os.Stdin unless configured otherwise. Host capabilities default to
// nil; the corresponding statements become no-ops that yield sentinel
// values, per the forgiving error model.
func New(opts ...Option) *Interp {
	in := &Interp{
		env:        NewEnvironment(),
		funcs:      make(map[string]*FunctionValue),
		modules:    make(map[string]*ModuleValue),
		stdout:     os.Stdout,
		stdin:      bufio.NewReader(os.Stdin),
		modulePath: DefaultModulePath,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Env exposes the variable table, primarily for tests asserting scope
// discipline.
func (in *Interp) Env() *Environment {
	return in.env
}

// RunSource lexes and executes a complete source buffer.
func (in *Interp) RunSource(source string) {
	in.Run(lexer.Tokenize(source))
}

// RunFile reads and executes a script file.
func (in *Interp) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot open file %s: %w", path, err)
	}
	in.RunSource(string(content))
	return nil
}

// Run executes a token stream, statement by statement, until the
// stream is exhausted.
func (in *Interp) Run(tokens []lexer.Token) {
	idx := 0
	for idx < len(tokens) && tokens[idx].Type != lexer.EOF {
		in.execStatement(tokens, &idx)
		// return/break/continue outside any frame or loop are no-ops;
		// the flags never survive to the top level.
		in.returnVal = nil
		in.isReturning = false
		in.isBreaking = false
		in.isContinuing = false
	}
}

// Close releases interpreter-owned resources: it stops the HTTP file
// server if one is running.
func (in *Interp) Close() {
	if in.http != nil && in.http.Running() {
		_ = in.http.Stop()
	}
}

// reportError prints a runtime error line and continues; nothing in
// the runtime unwinds.
func (in *Interp) reportError(format string, args ...any) {
	fmt.Fprintf(in.stdout, "Error: "+format+"\n", args...)
}
