//go:build tools

// Package tools pins the code generators behind the go:generate directives.
// The swag CLI itself is installed separately; the library import keeps the
// annotation parser version aligned with it.
package tools

import (
	_ "github.com/swaggo/swag"
	_ "go.uber.org/mock/mockgen"
)
