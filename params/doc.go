// Package params loads placeholder values for URL templates. Values come
// from parameter files (JSON objects, YAML mappings, or Bazel-style
// workspace status files with "KEY VALUE" lines) and from explicit
// NAME=VALUE pairs. Later sources override earlier ones.
package params
