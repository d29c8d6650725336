package tui

import (
	"github.com/MKhiriev/go-stack-keeper/models"
)

type authDoneMsg struct {
	err error
}

type listLoadedMsg struct {
	listing models.StackListResponse
	err     error
}

type stackLoadedMsg struct {
	stack models.StackResponse
	err   error
}

type stackSavedMsg struct {
	err error
}

type stackDeletedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
