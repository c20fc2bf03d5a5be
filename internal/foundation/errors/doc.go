// Package errors classifies failures raised while building the blog.
//
// A ClassifiedError carries a category (which part of the build failed), a
// severity (whether the build stops or only the affected post is dropped) and
// ordered log fields. The CLI maps categories to exit codes and the preview
// server maps them to HTTP statuses.
//
//	err := errors.WrapError(cause, errors.CategoryFrontmatter, "post skipped").
//		Warning().
//		ForPost(id, path).
//		Build()
package errors
