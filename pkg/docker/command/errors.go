package command

import "errors"

var ErrAuthorizationFailed = errors.New("authorization failed")
