// Package modulewrap implements the Module Wrapper (C9): the file-level
// scaffolding around a lowered body that gives it CommonJS, AMD, UMD, or
// System.register shape. The teacher never needs this (esbuild's bundler
// produces its own IIFE/CJS/ESM wrapping at the linker stage, not per-file),
// so this package is grounded on original_source's module-kind dispatch
// instead, adapted to return the same []ir.Node / trailing-text split the
// Emission Engine already uses for every other construct.
package modulewrap

import (
	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// Prologue returns the IR nodes printed before a file's lowered statements.
// hasImportOrExportSyntax mirrors ast.SourceFile's own field: a file with no
// import/export syntax at all is left completely unwrapped regardless of
// the configured format, matching tsc's "not a module" passthrough.
func Prologue(format compat.ModuleFormat, hasImportOrExportSyntax bool) []ir.Node {
	if !hasImportOrExportSyntax || !format.IsCommonJSLike() {
		return nil
	}
	switch format {
	case compat.ModuleCommonJS:
		return []ir.Node{
			&ir.UseStrict{},
			&ir.EsModuleMarker{},
		}
	case compat.ModuleAMD:
		return []ir.Node{
			&ir.Raw{Text: `define(["require", "exports"], function (require, exports) {`},
			&ir.EsModuleMarker{},
		}
	case compat.ModuleUMD:
		return []ir.Node{
			&ir.Raw{Text: `(function (factory) {`},
			&ir.Raw{Text: `    if (typeof module === "object" && typeof module.exports === "object") {`},
			&ir.Raw{Text: `        var v = factory(require, exports);`},
			&ir.Raw{Text: `        if (v !== undefined) module.exports = v;`},
			&ir.Raw{Text: `    }`},
			&ir.Raw{Text: `    else if (typeof define === "function" && define.amd) {`},
			&ir.Raw{Text: `        define(["require", "exports"], factory);`},
			&ir.Raw{Text: `    }`},
			&ir.Raw{Text: `})(function (require, exports) {`},
			&ir.EsModuleMarker{},
		}
	case compat.ModuleSystem:
		return []ir.Node{
			&ir.Raw{Text: `System.register([], function (exports_1, context_1) {`},
			&ir.Raw{Text: `    "use strict";`},
			&ir.Raw{Text: `    var __moduleName = context_1 && context_1.id;`},
			&ir.Raw{Text: `    return {`},
			&ir.Raw{Text: `        setters: [],`},
			&ir.Raw{Text: `        execute: function () {`},
		}
	default:
		// ModuleNode16/ModuleNodeNext behave like plain CommonJS for the
		// wrapper's purposes; no per-file ESM-vs-CJS choice is made for them
		// (package.json "type" is outside this repo's scope, per the
		// original Non-goals on tsconfig/file-discovery).
		return []ir.Node{
			&ir.UseStrict{},
			&ir.EsModuleMarker{},
		}
	}
}

// Epilogue returns the trailing text closing whatever Prologue opened, or
// "" when the format needs no closing (CommonJS: the body is already
// complete statements, nothing wraps them).
func Epilogue(format compat.ModuleFormat) string {
	switch format {
	case compat.ModuleAMD, compat.ModuleUMD:
		return "});"
	case compat.ModuleSystem:
		return "        }\n    };\n});"
	default:
		return ""
	}
}
