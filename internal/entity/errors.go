package entity

import "errors"

var (
	// ErrBusy is returned when an action is triggered while another is pending.
	ErrBusy = errors.New("another action is in progress")
	// ErrNotLoaded is returned by actions that need entity data before it arrived.
	ErrNotLoaded = errors.New("entity not loaded")
	// ErrTerminated is returned once the entity has been deleted.
	ErrTerminated = errors.New("entity was deleted")
	// ErrNotFound is returned when the data source has no record for the id.
	ErrNotFound = errors.New("entity not found")
	// ErrUnknownRelation is returned when removing a relation the entity does not have.
	ErrUnknownRelation = errors.New("unknown relation")
	// ErrUnknownField is returned when editing a field the backend does not accept.
	ErrUnknownField = errors.New("unknown field")
	// ErrRefresh wraps a reload that failed after a mutation went through.
	ErrRefresh = errors.New("refresh failed")
)
