package httpserver

import (
	"net/http"

	"go.trai.ch/mazerepair/internal/build"
	"go.trai.ch/mazerepair/internal/core/domain"
)

// Info is the payload of the info endpoint.
type Info struct {
	App      domain.AppSettings `json:"app"`
	Build    BuildInfo          `json:"build"`
	Instance InstanceInfo       `json:"instance"`
}

// BuildInfo describes the binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// InstanceInfo identifies one running application context.
type InstanceInfo struct {
	ID       string   `json:"id"`
	Profiles []string `json:"profiles"`
}

// NewInfo assembles the info payload from the settings and link-time build data.
func NewInfo(settings *domain.Settings, instanceID string, profiles []string) Info {
	return Info{
		App: settings.App,
		Build: BuildInfo{
			Version: build.Version,
			Commit:  build.Commit,
			Date:    build.Date,
		},
		Instance: InstanceInfo{ID: instanceID, Profiles: profiles},
	}
}

func infoHandler(info Info) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}
