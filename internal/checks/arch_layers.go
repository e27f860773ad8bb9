package checks

import (
	"fmt"
	"os"
	"strings"

	"github.com/compasdx/gate/internal/api"
	"github.com/compasdx/gate/internal/manifest"
	"github.com/compasdx/gate/internal/pathscan"
)

// runArchLayers assigns every repo code file to each declared layer whose
// include_globs match it, then flags any file whose contents mention a denied
// layer's module_prefixes — a textual substring check standing in for real
// import-graph analysis, since module_prefixes are written precisely so
// they're distinctive enough substrings (e.g. "internal/storage/", not "s").
func runArchLayers(repoRoot string, configs []manifest.ArchLayersCheckConfig) []api.Violation {
	var violations []api.Violation

	for _, cfg := range configs {
		files, err := pathscan.Scan(repoRoot, nil, nil)
		if err != nil {
			violations = append(violations, internalError("arch_layers", err))
			continue
		}

		layerFiles := map[string][]pathscan.FileRef{}
		for _, layer := range cfg.Layers {
			for _, f := range files {
				if !pathscan.IsProbablyCodeFile(f.RelPath) {
					continue
				}
				if matchesGlobSet(layer.IncludeGlobs, f.RelPath) {
					layerFiles[layer.ID] = append(layerFiles[layer.ID], f)
				}
			}
		}

		prefixesByLayer := map[string][]string{}
		for _, layer := range cfg.Layers {
			prefixesByLayer[layer.ID] = layer.ModulePrefixes
		}

		for _, rule := range cfg.Rules {
			for _, denyLayer := range rule.DenyToLayers {
				prefixes := prefixesByLayer[denyLayer]
				if len(prefixes) == 0 {
					continue
				}
				for _, f := range layerFiles[rule.FromLayer] {
					data, err := os.ReadFile(f.AbsPath)
					if err != nil {
						continue
					}
					content := string(data)
					for _, prefix := range prefixes {
						if strings.Contains(content, prefix) {
							violations = append(violations, api.NewErrorViolation(
								"arch_layers.forbidden_dependency",
								fmt.Sprintf("%s (layer %q) references %q, which belongs to denied layer %q", f.RelPath, rule.FromLayer, prefix, denyLayer),
								f.RelPath,
								map[string]any{"check_id": cfg.ID, "from_layer": rule.FromLayer, "to_layer": denyLayer, "prefix": prefix},
							))
							break
						}
					}
				}
			}
		}
	}
	return violations
}
