package validate

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// runProto compiles each proto3 definition through protoc with the
// descriptor set discarded; only diagnostics matter.
func (r *Runner) runProto(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.Proto)
	files, err := collectFiles(root, ".proto")
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	bin := r.cfg.Tools.Protoc
	if !r.tools.Available(bin) {
		return nil, 0, fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	var issues []Issue
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		out, runErr := r.tools.Run(ctx, "", bin,
			"-I", root,
			"--descriptor_set_out="+os.DevNull,
			path,
		)
		if runErr == nil {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Suite:    SuiteProto,
			Path:     path,
			Message:  strings.TrimSpace(firstLines(out, 5)),
		})
	}

	return issues, len(files), nil
}
