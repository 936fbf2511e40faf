package console

import "errors"

var (
	// ErrEmptyCommand is returned for blank input; nothing is logged
	ErrEmptyCommand = errors.New("command is empty")

	// ErrBusy is returned while another dispatch is outstanding
	ErrBusy = errors.New("dispatcher is busy")

	// ErrUnknownPanel is returned for values outside the panel set
	ErrUnknownPanel = errors.New("unknown panel")
)
