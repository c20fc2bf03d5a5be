package errors

// ErrorCategory names the part of the build that failed.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Content pipeline.
	CategoryDiscovery   ErrorCategory = "discovery"
	CategoryFrontmatter ErrorCategory = "frontmatter"
	CategoryCompilation ErrorCategory = "compilation"
	CategoryIndex       ErrorCategory = "index"
	CategoryBuild       ErrorCategory = "build"
	CategoryFileSystem  ErrorCategory = "filesystem"

	// Collaborators outside the process.
	CategoryNetwork ErrorCategory = "network"
	CategoryGit     ErrorCategory = "git"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitGeneric  = 1
	ExitUsage    = 2
	ExitConfig   = 7
	ExitExternal = 8
	ExitInternal = 10
	ExitBuild    = 11
	ExitRuntime  = 12
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation:  ExitUsage,
	CategoryConfig:      ExitConfig,
	CategoryNetwork:     ExitExternal,
	CategoryGit:         ExitExternal,
	CategoryDiscovery:   ExitBuild,
	CategoryFrontmatter: ExitBuild,
	CategoryCompilation: ExitBuild,
	CategoryIndex:       ExitBuild,
	CategoryBuild:       ExitBuild,
	CategoryFileSystem:  ExitBuild,
	CategoryInternal:    ExitInternal,
	CategoryRuntime:     ExitRuntime,
}

// ExitCode returns the process exit code for the category.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return ExitGeneric
}

// ErrorSeverity decides whether the build continues.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the build
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Build continues without the affected post
)
