package validate

import (
	"context"
	"fmt"
	"strings"
)

// runOpenAPI validates OpenAPI documents under the api-specs root with
// swagger-cli.
func (r *Runner) runOpenAPI(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.APISpecs)
	files, err := collectFiles(root, ".yaml", ".yml", ".json")
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	bin := r.cfg.Tools.SwaggerCLI
	if !r.tools.Available(bin) {
		return nil, 0, fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	var issues []Issue
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		out, runErr := r.tools.Run(ctx, "", bin, "validate", path)
		if runErr == nil {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Suite:    SuiteOpenAPI,
			Path:     path,
			Message:  strings.TrimSpace(firstLines(out, 5)),
		})
	}

	return issues, len(files), nil
}
