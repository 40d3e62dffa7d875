package apiglot

// Identity of the CLI, shown by `apiglot info` and sent to the API.
const (
	Name        = "apiglot"
	Description = "Apiglot's official CLI to help you implement i18n in your projects"
	Repository  = "https://github.com/apiglot/apiglot"
)

// Set with -ldflags "-X github.com/apiglot/apiglot.Version=..." for releases.
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion is Version with the short commit appended as build metadata
// ("1.0.0+0123456") when it is known.
func FullVersion() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Version
	}
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "+" + short
}

// UserAgent is the User-Agent header of every API request.
func UserAgent() string {
	return Name + "/" + Version
}
