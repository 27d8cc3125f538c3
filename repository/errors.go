package repository

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrTableNumberTaken = errors.New("table number already taken")
)
