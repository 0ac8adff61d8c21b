package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Config file names.
const (
	ConfigFileName        = "config.toml"
	ProjectConfigFileName = "jira-reports.toml"
	appDirName            = "jira-reports"
)

// maxSheetNameLen is the Excel limit on worksheet names.
const maxSheetNameLen = 31

var sheetNameForbidden = strings.NewReplacer("/", " ", "\\", " ", "*", " ", ":", " ", "?", " ", "[", " ", "]", " ")

// SheetName returns the worksheet name of the table at index (zero-based).
// Format: "<index+1> - <name>" with characters Excel rejects replaced by spaces,
// cut to 31 characters.
func SheetName(index int, name string) string {
	s := fmt.Sprintf("%d - %s", index+1, sheetNameForbidden.Replace(name))
	runes := []rune(s)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	return string(runes)
}

// OutputPath returns the path of a generated document.
// The extension is appended unless name already carries it.
func OutputPath(dir, name, ext string) string {
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, appDirName)
}

// ProjectConfigPath returns the project config path in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// GlobalLogPath returns the path of the global log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "jira-reports.log")
}

var logNameUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ReportLogPath returns the path of the log file dedicated to one report.
func ReportLogPath(logDir, report string) string {
	slug := strings.Trim(logNameUnsafe.ReplaceAllString(report, "-"), "-")
	if slug == "" {
		slug = "report"
	}
	return filepath.Join(logDir, "report-"+slug+".log")
}
