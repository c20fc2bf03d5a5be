// Package build provides the build pipeline for devlog.
//
// A build locates every content unit, reads, parses and compiles each one on
// a bounded worker pool, and assembles the survivors into an immutable
// index. Per-post failures are collected into the Report and never stop the
// pass; a missing content root or duplicate identifiers abort it.
// All execution paths (CLI, preview server, watcher) route through Pipeline.
package build
