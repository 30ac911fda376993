package docker

import "strings"

// what registries and docker versions print when a push is not authorized
var authorizationFailures = []string{
	"no basic auth credentials",
	"authorization failed",
	"401 Unauthorized",
	"unauthorized: authentication required",
	"denied: requested access to the resource is denied",
}

func isAuthorizationFailedError(err error) bool {
	msg := err.Error()
	for _, marker := range authorizationFailures {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
