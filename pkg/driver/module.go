package driver

import (
	"fmt"
	"os"

	"rill/interpreter-go/pkg/ast"
)

// LoadModule reads a JSON-serialized module produced by the parser front end
// and decodes it into an AST.
func LoadModule(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("module: read %s: %w", path, err)
	}
	module, err := ast.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("module: %s: %w", path, err)
	}
	return module, nil
}
