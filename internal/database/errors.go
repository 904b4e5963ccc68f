package database

import "errors"

var (
	ErrEmptyConnectionString   = errors.New("connection string is empty")
	ErrInvalidConnectionString = errors.New("invalid connection string")
)
