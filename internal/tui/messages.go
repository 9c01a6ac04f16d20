package tui

import "github.com/Veraticus/paddy-ledger/internal/service"

// Print messages.
type printStartedMsg struct {
	results <-chan service.PrintResult
	slots   int
}

type printDoneMsg struct {
	result service.PrintResult
}

type printFailedMsg struct {
	err error
}

// noticeLevel selects the status line style.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarning
	noticeError
)
