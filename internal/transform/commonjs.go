package transform

import (
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// BuildExportInit assembles the grouped `exports.X = void 0;` block tsc
// emits immediately after the require statements, one line listing every
// named export so later conditional assignment doesn't need a TDZ check
// (§4.4.7).
func (c Context) BuildExportInit(names []string) ir.Node {
	if len(names) == 0 {
		return nil
	}
	return &ir.ExportInit{Names: names}
}

// BuildReExportStar lowers `export * from "m"` into an `__exportStar(require("m"), exports)`
// call (§4.4.7).
func (c Context) BuildReExportStar(moduleVarName string) ir.Node {
	return &ir.ReExportProperty{ModuleVarName: moduleVarName}
}

// BuildExportAssignment lowers `export = expr` (IsEquals true) into a bare
// `module.exports = expr;` statement, or a named `export default expr` into
// `exports.default = expr;` (§4.4.7).
func (c Context) BuildExportAssignment(exportName string, valueRef ir.Node, isEquals bool) ir.Node {
	return &ir.ExportAssignmentStmt{ExportName: exportName, Value: valueRef, IsEquals: isEquals}
}
