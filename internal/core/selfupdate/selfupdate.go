// Package selfupdate checks the release repository for a newer version
// of the tool. The check is advisory: any failure is silent and never
// delays or blocks a run.
package selfupdate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	version "github.com/hashicorp/go-version"

	"spotitag/internal/config"
	"spotitag/internal/shared"
)

const defaultRepo = "spotitag/spotitag"

const checkTimeout = 5 * time.Second

// versionInfo mirrors version/version.json in the release repository.
type versionInfo struct {
	Version string `json:"version"`
	Notes   string `json:"notes,omitempty"`
}

// CheckForUpdates fetches the published version record and prints a
// notice when a newer release exists.
func CheckForUpdates(cfg *config.Config, currentVersion string) {
	if cfg.DisableUpdateCheck {
		return
	}

	repo := cfg.UpdateRepo
	if repo == "" {
		repo = defaultRepo
	}
	rawURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/main/version/version.json", repo)

	client := &http.Client{Timeout: checkTimeout}
	resp, err := client.Get(rawURL)
	if err != nil {
		shared.DebugPrint(shared.IsDebugMode(), "update check failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		shared.DebugPrint(shared.IsDebugMode(), "update check returned status %d", resp.StatusCode)
		return
	}

	var remote versionInfo
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		shared.DebugPrint(shared.IsDebugMode(), "update check decode failed: %v", err)
		return
	}

	if isNewerVersion(remote.Version, currentVersion) {
		shared.ColorWarning.Printf("⚠️ A newer version (%s) is available, you are running %s.\n", remote.Version, currentVersion)
	}
}

// isNewerVersion compares two versions using semantic versioning
func isNewerVersion(latest, current string) bool {
	vLatest, err := version.NewVersion(latest)
	if err != nil {
		return false
	}
	vCurrent, err := version.NewVersion(current)
	if err != nil {
		return false
	}
	return vLatest.GreaterThan(vCurrent)
}
