package constants

// DefaultIgnoredExtensions lists file extensions never treated as candidates.
// A code snippet is not pasted from binary, archive, office, lock or log
// files. Comparison is case-insensitive.
var DefaultIgnoredExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".exe", ".dll",
	".pdf", ".zip", ".tar", ".gz", ".rar", ".7z",
	".lock", ".log", ".env", ".testresult",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
}

// DefaultIgnoredFileNames are lock files without a .lock extension. They are
// never candidates.
var DefaultIgnoredFileNames = []string{
	"package-lock.json",
	"npm-shrinkwrap.json",
}

// DefaultSkippedDirectories are directory names skipped during candidate
// collection in addition to every directory whose name starts with a dot.
var DefaultSkippedDirectories = []string{
	"node_modules",
	"vendor",
	"__pycache__",
	"dist",
	"build",
	"target",
}

// GitignoreFileName is read from each walk root when gitignore rules are respected
const GitignoreFileName = ".gitignore"

// IgnoreFileName holds extra ignore rules in .gitignore syntax. It is read
// from each walk root even when .gitignore handling is disabled.
const IgnoreFileName = ".srcmatchignore"

// ConfigFileName is the dedicated configuration file discovered by walking up
// from the target directory
const ConfigFileName = ".srcmatch.toml"
