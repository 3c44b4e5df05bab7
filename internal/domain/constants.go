package domain

const (
	PathEmpty           = ""
	PathCurrent         = "."
	PathTraversalPrefix = ".."
	PathSeparator       = "/"
	InvalidNameColon    = ":"
	FormatJSON          = "json"
	FormatYAML          = "yaml"
	MIMEJSON            = "application/json"
	MIMEYAML            = "application/yaml"
)
