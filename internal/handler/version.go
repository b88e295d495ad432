package handler

import (
	"net/http"
	"os"
	"runtime"
)

// EnvVersion overrides the version when no build-time value was injected
const EnvVersion = "VERSION"

const devVersion = "dev"

// VersionInfo contains version and build information
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	ServiceName = "ecohunt"
	Version     = devVersion
	BuildTime   = "unknown"
	GitCommit   = "unset"
)

// HandleVersion reports which build is deployed
// @Summary Build version
// @Description Returns the service version, Go runtime and build metadata
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Service:   ServiceName,
			Version:   CurrentVersion(),
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

// CurrentVersion returns the build-time version, then the VERSION
// environment variable, then "dev"
func CurrentVersion() string {
	if Version != devVersion && Version != "" {
		return Version
	}
	if envVersion := os.Getenv(EnvVersion); envVersion != "" {
		return envVersion
	}
	return devVersion
}
