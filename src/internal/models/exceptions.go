package models

import "errors"

var (
	ErrInvalidReference = errors.New("invalid identifier reference")
	ErrInvalidParams    = errors.New("invalid parameters")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrDatabaseDelete     = errors.New("database delete error")
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateRecord    = errors.New("duplicate record")
)

var (
	ErrRedisGet = errors.New("redis get error")
	ErrRedisSet = errors.New("redis set error")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrActivityAppend     = errors.New("failed to append activity log entry")
)
