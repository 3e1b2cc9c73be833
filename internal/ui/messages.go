package ui

import "github.com/unkn0wn-root/curlmonkey/internal/model"

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusError
)

type statusMsg struct {
	text  string
	level statusLevel
}

type responseMsg struct {
	response *model.Response
	request  *model.Request
}

type clipboardMsg struct {
	text string
	err  error
}
