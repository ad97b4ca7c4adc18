// Package version exposes the build version reported by the health
// endpoint and the startup log.
//
// Version is set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/authgate/version.Version=1.0.0"
package version

import "runtime/debug"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info holds the resolved build identity.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// GetVersionInfo resolves the build identity, falling back to the
// embedded VCS metadata when no -ldflags were provided.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		if info.GitCommit == "" {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
				}
			}
		}
	}

	return info
}
