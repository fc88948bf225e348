package session

import (
	"strings"

	"mcserver/internal/api"
)

const (
	// listPrefixLen is the colour escape printed before every session name.
	listPrefixLen = 7
	// listSuffixLen is the colour reset and padding printed between the
	// name and the "[Created" marker.
	listSuffixLen = 4
)

// parseSessionList parses the output of "zellij list-sessions". Each line
// looks like
//
//	\x1b[32;1mname.mcserver\x1b[m [Created 2h 3m ago]
//	\x1b[32;1mold.mcserver\x1b[m [Created 1d ago] (EXITED - attach to resurrect)
//
// A line is exited when its last parenthesised segment contains EXITED.
// Lines too short to hold a name are skipped.
func parseSessionList(output string) []api.SessionInfo {
	var sessions []api.SessionInfo

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		exited := false
		if i := strings.LastIndexByte(line, '('); i >= 0 {
			exited = strings.Contains(line[i:], "EXITED")
		}

		if len(line) <= listPrefixLen {
			continue
		}

		var name string
		if i := strings.LastIndex(line, "[Created"); i >= 0 {
			end := i - listSuffixLen
			if end <= listPrefixLen {
				continue
			}
			name = line[listPrefixLen:end]
		} else {
			name = line[listPrefixLen:]
		}

		sessions = append(sessions, api.SessionInfo{Name: name, Exited: exited})
	}

	return sessions
}
