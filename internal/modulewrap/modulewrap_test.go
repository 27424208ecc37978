package modulewrap

import (
	"strings"
	"testing"

	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

func render(nodes []ir.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *ir.UseStrict:
			b.WriteString(`"use strict";`)
		case *ir.EsModuleMarker:
			b.WriteString(`Object.defineProperty(exports, "__esModule", { value: true });`)
		case *ir.Raw:
			b.WriteString(v.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestPrologueNoModuleSyntax(t *testing.T) {
	if got := Prologue(compat.ModuleCommonJS, false); got != nil {
		t.Errorf("Prologue with no import/export syntax = %v, want nil", got)
	}
}

func TestPrologueNonCommonJSLike(t *testing.T) {
	if got := Prologue(compat.ModuleES2015, true); got != nil {
		t.Errorf("Prologue(ES2015, true) = %v, want nil (ESM needs no wrapper)", got)
	}
}

func TestPrologueCommonJS(t *testing.T) {
	out := render(Prologue(compat.ModuleCommonJS, true))
	if !strings.Contains(out, `"use strict";`) {
		t.Errorf("CommonJS prologue missing use strict: %s", out)
	}
	if !strings.Contains(out, "__esModule") {
		t.Errorf("CommonJS prologue missing __esModule marker: %s", out)
	}
}

// TestPrologueAMDNoUseStrict pins down a detail easy to get backwards by
// analogy with CommonJS: AMD's define() factory body carries no top-level
// "use strict" directive.
func TestPrologueAMDNoUseStrict(t *testing.T) {
	out := render(Prologue(compat.ModuleAMD, true))
	if strings.Contains(out, `"use strict";`) {
		t.Errorf("AMD prologue should not contain use strict: %s", out)
	}
	if !strings.Contains(out, `define(["require", "exports"], function (require, exports) {`) {
		t.Errorf("AMD prologue missing define() wrapper: %s", out)
	}
	if !strings.Contains(out, "__esModule") {
		t.Errorf("AMD prologue missing __esModule marker: %s", out)
	}
	if got, want := Epilogue(compat.ModuleAMD), "});"; got != want {
		t.Errorf("Epilogue(AMD) = %q, want %q", got, want)
	}
}

func TestPrologueUMDNoUseStrict(t *testing.T) {
	out := render(Prologue(compat.ModuleUMD, true))
	if strings.Contains(out, `"use strict";`) {
		t.Errorf("UMD prologue should not contain use strict: %s", out)
	}
	if !strings.Contains(out, "typeof define === \"function\" && define.amd") {
		t.Errorf("UMD prologue missing AMD branch: %s", out)
	}
}

func TestPrologueSystem(t *testing.T) {
	out := render(Prologue(compat.ModuleSystem, true))
	if !strings.Contains(out, `System.register([], function (exports_1, context_1) {`) {
		t.Errorf("System prologue missing System.register: %s", out)
	}
	if !strings.Contains(out, `"use strict";`) {
		t.Errorf("System prologue should contain use strict inside the factory: %s", out)
	}
	want := "        }\n    };\n});"
	if got := Epilogue(compat.ModuleSystem); got != want {
		t.Errorf("Epilogue(System) = %q, want %q", got, want)
	}
}

func TestEpilogueCommonJSEmpty(t *testing.T) {
	if got := Epilogue(compat.ModuleCommonJS); got != "" {
		t.Errorf("Epilogue(CommonJS) = %q, want \"\"", got)
	}
}
