// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Definition is one extension block after decoding.
type Definition struct {
	Name        string
	SourcePath  string
	Source      string
	EntryPoints []string
	Settings    map[string]any
	// FilePath is the manifest the definition came from.
	FilePath string
}

// Module builds the extension loader described by d.
func (d *Definition) Module(logger *slog.Logger) *extension.Module {
	return extension.New(d.Name, d.Source,
		extension.WithSettings(d.Settings),
		extension.WithLogger(logger),
	)
}

// rootSchema expects one or more 'extension' blocks.
type rootSchema struct {
	Extensions []*hclExtension `hcl:"extension,block"`
}

type hclExtension struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var extensionBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "source", Required: true},
		{Name: "entry_points"},
		{Name: "settings"},
	},
}

// ParseFile decodes every extension block of a parsed HCL file and reads the
// referenced glue sources.
func ParseFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Definition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing extension definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &rootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	defs := make([]*Definition, 0, len(schema.Extensions))
	for _, block := range schema.Extensions {
		content, contentDiags := block.Body.Content(extensionBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		def := &Definition{Name: block.Name, FilePath: filePath}
		if def.Name == "" {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Empty extension name",
				Detail:   "An extension block must be labelled with a dot-delimited namespace.",
				Subject:  block.Body.MissingItemRange().Ptr(),
			})
			continue
		}

		var source string
		attr := content.Attributes["source"]
		allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &source)...)
		def.SourcePath = filepath.Join(filepath.Dir(filePath), source)

		if attr, ok := content.Attributes["entry_points"]; ok {
			eps, epDiags := decodeEntryPoints(attr)
			allDiags = append(allDiags, epDiags...)
			def.EntryPoints = eps
		}

		if attr, ok := content.Attributes["settings"]; ok {
			settings, setDiags := decodeSettings(attr)
			allDiags = append(allDiags, setDiags...)
			def.Settings = settings
		}

		if source != "" {
			src, err := os.ReadFile(def.SourcePath)
			if err != nil {
				allDiags = append(allDiags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unreadable extension source",
					Detail:   fmt.Sprintf("Extension %q: %s", def.Name, err),
					Subject:  attr.Range.Ptr(),
				})
				continue
			}
			def.Source = string(src)
		}

		defs = append(defs, def)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed extension definitions", "count", len(defs))
	return defs, nil
}

func decodeEntryPoints(attr *hcl.Attribute) ([]string, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid entry_points",
			Detail:   fmt.Sprintf("entry_points must be a list of strings: %s", err),
			Subject:  attr.Range.Ptr(),
		}}
	}
	var out []string
	if err := gocty.FromCtyValue(listVal, &out); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid entry_points",
			Detail:   err.Error(),
			Subject:  attr.Range.Ptr(),
		}}
	}
	return out, diags
}

func decodeSettings(attr *hcl.Attribute) (map[string]any, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid settings",
			Detail:   fmt.Sprintf("settings must be an object, got %s", ty.FriendlyName()),
			Subject:  attr.Range.Ptr(),
		}}
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid settings",
			Detail:   err.Error(),
			Subject:  attr.Range.Ptr(),
		}}
	}
	settings, _ := native.(map[string]any)
	return settings, diags
}
