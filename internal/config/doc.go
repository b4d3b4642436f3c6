// Package config loads spreadgen.yaml: which files to expand, where the
// results go, which invocation names are recognised and how the generated
// code is shaped and formatted.
package config
