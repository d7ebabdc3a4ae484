// Package source decodes codebook documents from bytes into the ordered value
// trees the record validators consume. JSON goes through a swappable token
// driver (go-json by default, encoding/json as the alternative); YAML goes
// through yaml.v3. Every format shares the same enforcement: duplicate keys
// are reported per policy and depth and size limits apply.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	codebook "github.com/reoring/codebook"
	eng "github.com/reoring/codebook/internal/engine"
	"github.com/reoring/codebook/source/gojson"
	jsonsrc "github.com/reoring/codebook/source/json"
	yamlsrc "github.com/reoring/codebook/source/yaml"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the format from a file name; anything that is not
// .yaml/.yml is treated as JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Driver turns document bytes into engine tokens.
type Driver = eng.Driver

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver Driver = gojson.Driver()
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d Driver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(gojson.Driver()) }

// UseStdJSONDriver selects the encoding/json driver.
func UseStdJSONDriver() { SetJSONDriver(jsonsrc.Driver()) }

// JSONDriverName reports the active JSON driver.
func JSONDriverName() string { return jsonDriver().Name() }

func jsonDriver() Driver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

func driverFor(f Format) (Driver, error) {
	switch f {
	case FormatJSON, "":
		return jsonDriver(), nil
	case FormatYAML:
		return yamlsrc.Driver(), nil
	}
	return nil, fmt.Errorf("source: unknown format %q", f)
}

// Decode parses data under the limits of pol. The returned Issues hold
// duplicate-key reports (severity from pol.DuplicateKeys) and, when the
// document could not be decoded, one fatal parse_error or truncated issue;
// the value is nil in that case.
func Decode(data []byte, format Format, pol codebook.Policy) (any, codebook.Issues) {
	if pol.MaxBytes > 0 && int64(len(data)) > pol.MaxBytes {
		return nil, codebook.Issues{codebook.IssueAt(codebook.Root(), codebook.CodeTruncated,
			fmt.Sprintf("document is %d bytes, limit is %d", len(data), pol.MaxBytes),
			map[string]any{"size": len(data), "limit": pol.MaxBytes})}
	}
	d, err := driverFor(format)
	if err != nil {
		return nil, codebook.ToIssues(err)
	}

	var iss codebook.Issues
	dupSev := pol.DuplicateKeys
	src := eng.WrapWithEnforcement(d.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: dupStrictness(dupSev),
		MaxDepth:    pol.MaxDepth,
		IssueSink: func(si eng.SimpleIssue) {
			if si.Code == eng.CodeDuplicateKey {
				iss = append(iss, toIssue(si, dupSev))
			}
		},
	})
	v, err := eng.DecodeTree(src)
	if err != nil {
		var ie eng.IssueError
		switch {
		case errors.As(err, &ie) && ie.Code == eng.CodeDuplicateKey:
			// already collected by the sink
		case errors.As(err, &ie):
			iss = append(iss, toIssue(ie.SimpleIssue, codebook.Error))
		default:
			iss = append(iss, codebook.IssueAt(codebook.Root(), codebook.CodeParseError, decodeMessage(err), nil))
		}
		return nil, iss
	}
	return v, iss
}

// DecodeReader reads r fully and decodes it. Reading stops one byte past
// pol.MaxBytes so oversized input is reported without being buffered.
func DecodeReader(r io.Reader, format Format, pol codebook.Policy) (any, codebook.Issues) {
	if pol.MaxBytes > 0 {
		r = io.LimitReader(r, pol.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, codebook.Issues{codebook.IssueAt(codebook.Root(), codebook.CodeParseError, err.Error(), nil)}
	}
	return Decode(data, format, pol)
}

func dupStrictness(s codebook.Severity) eng.DuplicateStrictness {
	switch s {
	case codebook.Ignore:
		return eng.DupIgnore
	case codebook.Error:
		return eng.DupError
	}
	return eng.DupWarn
}

func toIssue(si eng.SimpleIssue, sev codebook.Severity) codebook.Issue {
	it := codebook.IssueAt(codebook.At(si.Path), si.Code, si.Message, nil)
	it.Severity = sev
	if si.Offset >= 0 {
		it.Params = map[string]any{"offset": si.Offset}
	}
	return it
}

func decodeMessage(err error) string {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return "unexpected end of document"
	}
	return err.Error()
}
