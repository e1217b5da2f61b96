package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/fsutil"
)

// LoadDir parses every .hcl file below dir. Definitions are returned in file
// order, then block order.
func LoadDir(ctx context.Context, dir string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading extension manifests...", "path", dir)

	filePaths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk extensions directory", "path", dir, "error", err)
		return nil, err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl extension manifests found in path", "path", dir)
		return nil, nil
	}

	parser := hclparse.NewParser()

	var defs []*Definition
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		fileDefs, diags := ParseFile(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to process extension definitions in %s: %w", filePath, diags)
		}
		defs = append(defs, fileDefs...)
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	logger.Info("Extension manifests loaded.", "extensions_loaded", len(defs))
	return defs, nil
}
