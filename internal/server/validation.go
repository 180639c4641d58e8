package server

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	maxScreenshotBytes  = 10 << 20
	maxSlugLength       = 128
	maxLineupNameLength = 80
	maxDescLength       = 280
	canonicalHost       = "csnades.gg"
)

var activeDutyMaps = []string{"mirage", "dust2", "inferno", "overpass", "ancient", "anubis", "nuke"}

var teamSides = []string{"t", "ct"}

var screenshotSlots = []string{"position", "aim", "result"}

var frameDirections = []string{"earlier", "later"}

var lineupReportReasons = []string{"outdated", "doesnt_work", "wrong_map", "other"}

// validateSourceURL checks that raw parses as an http(s) URL pointing at the
// canonical source domain, bare or www-prefixed. Malformed and off-domain
// inputs get distinct messages.
func validateSourceURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", errors.New("csnades_url is not a valid URL")
	}
	host := strings.ToLower(parsed.Hostname())
	if host != canonicalHost && host != "www."+canonicalHost {
		return "", fmt.Errorf("csnades_url must point at %s", canonicalHost)
	}
	return parsed.String(), nil
}

func validateSlug(slug string) (string, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return "", errors.New("slug is required")
	}
	if len(trimmed) > maxSlugLength {
		return "", fmt.Errorf("slug must be %d characters or fewer", maxSlugLength)
	}
	return trimmed, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSupportedMap(name string) bool {
	return containsString(activeDutyMaps, name)
}

func isTeamSide(side string) bool {
	return containsString(teamSides, side)
}

func isThrowTechnique(value string) bool {
	_, ok := techniqueLabels[value]
	return ok
}

func isScreenshotSlot(name string) bool {
	return containsString(screenshotSlots, name)
}

func isFrameDirection(value string) bool {
	return containsString(frameDirections, value)
}

func isLineupReportReason(value string) bool {
	return containsString(lineupReportReasons, value)
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
