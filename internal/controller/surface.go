package controller

import "github.com/google/uuid"

// RowID is an opaque handle for a rendered row.
type RowID string

// NewRowID returns a fresh random row handle.
func NewRowID() RowID {
	return RowID(uuid.NewString())
}

// Row is one rendered task.
type Row struct {
	ID   RowID
	Text string
}

// Surface is the UI collaborator the controller renders into.
type Surface interface {
	// InputValue returns the current text-entry value.
	InputValue() string
	// ClearInput empties the text-entry control.
	ClearInput()
	// AppendRow renders row at the end of the visible list.
	AppendRow(row Row)
	// DetachRow removes the row from the visible list.
	DetachRow(id RowID)
	// Warn shows a blocking notice to the user.
	Warn(msg string)
}

// NopSurface renders nothing and has an always-empty input.
type NopSurface struct{}

func (NopSurface) InputValue() string { return "" }
func (NopSurface) ClearInput()        {}
func (NopSurface) AppendRow(Row)      {}
func (NopSurface) DetachRow(RowID)    {}
func (NopSurface) Warn(string)        {}
