package program

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/eggir/internal/ast"
)

// Error codes shared by every command that reads or writes programs.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeUnsupported = "E002" // Unsupported document format
	ErrCodeNoFiles     = "E003" // No input files found
	ErrCodeLoadFailed  = "E004" // Document failed to parse
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Document did not describe a valid program
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError describes a failure to load a program document.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// FormatOf picks the document encoding from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".cue":
		return FormatCUE, true
	default:
		return "", false
	}
}

// LoadFile reads and decodes a program document.
func LoadFile(path string) ([]ast.Command, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported program file: %s", path)}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("program not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return Parse(path, format, data)
}

// Parse decodes document bytes. The name is used in error messages.
func Parse(name string, format Format, data []byte) ([]ast.Command, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		err = parseYAML(data, &doc)
	case FormatJSON:
		err = parseJSON(data, &doc)
	case FormatCUE:
		err = parseCUE(name, data, &doc)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, le
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("parsing %s: %v", name, err)}
	}

	cmds, err := Decode(doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("%s: %v", name, err)}
	}
	return cmds, nil
}

func parseYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// parseCUE evaluates a CUE file and decodes its `program` field, or the
// whole value when that field is absent.
func parseCUE(name string, data []byte, doc *Document) error {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return cueLoadError(ErrCodeLoadFailed, "compiling CUE", err)
	}
	if p := value.LookupPath(cue.ParsePath("program")); p.Exists() {
		value = p
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return cueLoadError(ErrCodeBuildFailed, "validating CUE", err)
	}
	if err := value.Decode(doc); err != nil {
		return cueLoadError(ErrCodeBuildFailed, "decoding CUE", err)
	}
	return nil
}

func cueLoadError(code, what string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", what, err)}
	if pos := cueerrors.Positions(err); len(pos) > 0 {
		le.Pos = pos[0]
	}
	return le
}

// Marshal renders commands as a document in the given format. CUE output is
// not supported; CUE documents are written as JSON.
func Marshal(cmds []ast.Command, format Format) ([]byte, error) {
	doc := Encode(cmds)
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, FormatCUE:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile writes commands to path in the format its extension names.
func WriteFile(path string, cmds []ast.Command) error {
	format, ok := FormatOf(path)
	if !ok {
		return &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported output file: %s", path)}
	}
	data, err := Marshal(cmds, format)
	if err != nil {
		return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing %s: %v", path, err)}
	}
	return nil
}
