package config

import (
	"encoding/json"
	"os"

	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/pkg/errors"
)

// FileOptions mirrors Options field-for-field but with JSON-friendly
// string enums, the shape `cmd/tszemit --config` decodes before resolving
// into an Options value. Any field left zero-valued falls back to
// DefaultOptions, then flag overrides are applied on top by the caller.
type FileOptions struct {
	Target                  string `json:"target"`
	Module                  string `json:"module"`
	JSX                     string `json:"jsx"`
	NewLine                 string `json:"newLine"`
	Indent                  string `json:"indent"`
	RemoveComments          bool   `json:"removeComments"`
	SingleQuote             bool   `json:"singleQuote"`
	OmitTrailingSemicolon   bool   `json:"omitTrailingSemicolon"`
	DownlevelIteration      bool   `json:"downlevelIteration"`
	LegacyDecorators        bool   `json:"legacyDecorators"`
	EmitPublicAPIOnly       bool   `json:"emitPublicApiOnly"`
	SourceMap               bool   `json:"sourceMap"`
	UseDefineForClassFields bool   `json:"useDefineForClassFields"`
}

// LoadFile reads and validates a JSON config file at path, per §7's
// statement that "configuration errors from the external config loader"
// are the one error class the core itself never raises. Every failure is
// wrapped with github.com/pkg/errors so cmd/tszemit can print a full
// cause chain.
func LoadFile(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrapf(err, "reading config file %q", path)
	}
	var fo FileOptions
	if err := json.Unmarshal(raw, &fo); err != nil {
		return Options{}, errors.Wrapf(err, "parsing config file %q", path)
	}
	return Resolve(fo)
}

// Resolve turns a FileOptions (string enums, as decoded from JSON or CLI
// flags) into a validated Options, defaulting unset fields.
func Resolve(fo FileOptions) (Options, error) {
	opts := DefaultOptions()

	if fo.Target != "" {
		t, err := ParseTarget(fo.Target)
		if err != nil {
			return Options{}, err
		}
		opts.Target = Target{Value: t}
	}
	if fo.Module != "" {
		m, err := ParseModule(fo.Module)
		if err != nil {
			return Options{}, err
		}
		opts.Module = m
	}
	if fo.JSX != "" {
		j, err := ParseJSX(fo.JSX)
		if err != nil {
			return Options{}, err
		}
		opts.JSX = j
	}
	if fo.NewLine != "" {
		switch fo.NewLine {
		case "lf", "LF":
			opts.NewLine = NewLineLF
		case "crlf", "CRLF":
			opts.NewLine = NewLineCRLF
		default:
			return Options{}, errors.Errorf("invalid newLine %q: want \"lf\" or \"crlf\"", fo.NewLine)
		}
	}
	if fo.Indent != "" {
		opts.Indent = fo.Indent
	}

	opts.RemoveComments = fo.RemoveComments
	opts.SingleQuote = fo.SingleQuote
	opts.HasSingleQuote = fo.SingleQuote
	opts.OmitTrailingSemicolon = fo.OmitTrailingSemicolon
	opts.DownlevelIteration = fo.DownlevelIteration
	opts.LegacyDecorators = fo.LegacyDecorators
	opts.EmitPublicAPIOnly = fo.EmitPublicAPIOnly
	opts.SourceMap = fo.SourceMap
	opts.UseDefineForClassFields = fo.UseDefineForClassFields

	return opts, nil
}

// ParseTarget parses one of the exact target names Resolve accepts from a
// FileOptions ("ES5", "ES2015", ..., "ESNext"). Exported so cmd/tszemit can
// validate a --target flag against the same names without duplicating them.
func ParseTarget(s string) (compat.Target, error) {
	switch s {
	case "ES3":
		return compat.ES3, nil
	case "ES5":
		return compat.ES5, nil
	case "ES2015":
		return compat.ES2015, nil
	case "ES2016":
		return compat.ES2016, nil
	case "ES2017":
		return compat.ES2017, nil
	case "ES2018":
		return compat.ES2018, nil
	case "ES2019":
		return compat.ES2019, nil
	case "ES2020":
		return compat.ES2020, nil
	case "ES2021":
		return compat.ES2021, nil
	case "ES2022":
		return compat.ES2022, nil
	case "ESNext":
		return compat.ESNext, nil
	default:
		return 0, errors.Errorf("invalid target %q", s)
	}
}

// ParseModule parses one of the exact module-format names Resolve accepts.
func ParseModule(s string) (compat.ModuleFormat, error) {
	switch s {
	case "None":
		return compat.ModuleNone, nil
	case "CommonJS":
		return compat.ModuleCommonJS, nil
	case "AMD":
		return compat.ModuleAMD, nil
	case "UMD":
		return compat.ModuleUMD, nil
	case "System":
		return compat.ModuleSystem, nil
	case "ES2015":
		return compat.ModuleES2015, nil
	case "ES2020":
		return compat.ModuleES2020, nil
	case "ES2022":
		return compat.ModuleES2022, nil
	case "ESNext":
		return compat.ModuleESNext, nil
	case "Node16":
		return compat.ModuleNode16, nil
	case "NodeNext":
		return compat.ModuleNodeNext, nil
	default:
		return 0, errors.Errorf("invalid module %q", s)
	}
}

// ParseJSX parses one of the exact jsx mode names Resolve accepts.
func ParseJSX(s string) (JSX, error) {
	switch s {
	case "preserve", "Preserve":
		return JSXPreserve, nil
	case "react", "React":
		return JSXReact, nil
	case "react-jsx", "ReactJSX":
		return JSXReactJSX, nil
	case "react-jsxdev", "ReactJSXDev":
		return JSXReactJSXDev, nil
	default:
		return 0, errors.Errorf("invalid jsx %q", s)
	}
}
