package turtle

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the library version, read from the VERSION file at build time.
var Version = strings.TrimSpace(rawVersion)
