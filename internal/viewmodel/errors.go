package viewmodel

import "errors"

var (
	// ErrInvalidTransition is returned when a modal transition is not allowed from its current state.
	ErrInvalidTransition = errors.New("invalid modal transition")
	// ErrSubmitInFlight is returned when a submit is attempted while another is running.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrSubmitCooldown is returned when a submit follows the previous one too quickly.
	ErrSubmitCooldown = errors.New("submit attempted during cooldown")
	// ErrDeleteInFlight is returned when a delete is attempted while another is running.
	ErrDeleteInFlight = errors.New("delete already in progress")
	// ErrClosed is returned by controllers used after Close.
	ErrClosed = errors.New("controller closed")
	// ErrNothingSelected is returned when an action needs a selected record and none is set.
	ErrNothingSelected = errors.New("no record selected")
)
