package main

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func versionString() string {
	return formatVersion(buildVersion, buildCommit)
}

func formatVersion(version, commit string) string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	if v != "dev" {
		return v
	}

	c := shortCommit(commit)
	if c == "" {
		return "dev"
	}
	return "dev-" + c
}

func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	if c == "" || c == "unknown" {
		return ""
	}
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

var (
	minMySQLJSON   = goversion.Must(goversion.NewVersion("5.7.8"))
	minMariaDBJSON = goversion.Must(goversion.NewVersion("10.2.7"))
)

// mysqlSupportsJSON reports whether a server version string belongs to a
// server with native JSON columns (MySQL >= 5.7.8, MariaDB >= 10.2.7).
// Unparseable versions count as unsupported so JSON columns degrade to TEXT.
func mysqlSupportsJSON(versionString string) bool {
	raw := strings.TrimSpace(versionString)
	isMariaDB := strings.HasSuffix(strings.ToLower(raw), "-mariadb")

	// Strip build/vendor suffix, e.g. "8.0.36-0ubuntu0.22.04.1"
	if idx := strings.IndexByte(raw, '-'); idx >= 0 {
		raw = raw[:idx]
	}
	v, err := goversion.NewVersion(raw)
	if err != nil {
		return false
	}

	if isMariaDB {
		return v.GreaterThanOrEqual(minMariaDBJSON)
	}
	return v.GreaterThanOrEqual(minMySQLJSON)
}
