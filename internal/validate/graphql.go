package validate

import (
	"context"
	"fmt"
	"strings"
)

// graphqlCheckScript builds each SDL file through the graphql npm package,
// which is how the corpus CI validates schemas.
const graphqlCheckScript = `
const fs = require('fs');
const { buildSchema } = require('graphql');
try {
  buildSchema(fs.readFileSync(process.argv[1], 'utf8'));
} catch (e) {
  console.error(e.message);
  process.exit(1);
}
`

// runGraphQL validates GraphQL SDL files via Node and the graphql package.
func (r *Runner) runGraphQL(ctx context.Context) ([]Issue, int, error) {
	root := r.absRoot(r.cfg.Roots.GraphQL)
	files, err := collectFiles(root, ".graphql", ".graphqls", ".gql")
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	bin := r.cfg.Tools.Node
	if !r.tools.Available(bin) {
		return nil, 0, fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	var issues []Issue
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		// Run from the graphql root so node resolves its local node_modules.
		out, runErr := r.tools.Run(ctx, root, bin, "-e", graphqlCheckScript, path)
		if runErr == nil {
			continue
		}
		if strings.Contains(out, "Cannot find module") {
			// The graphql package itself is absent; treat like a missing tool.
			return nil, 0, fmt.Errorf("graphql npm package: %w", ErrToolMissing)
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Suite:    SuiteGraphQL,
			Path:     path,
			Message:  strings.TrimSpace(firstLines(out, 3)),
		})
	}

	return issues, len(files), nil
}
