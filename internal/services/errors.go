package services

import "errors"

var (
  ErrForbidden      = errors.New("forbidden")
  ErrNotFound       = errors.New("not found")
  ErrAlreadyClaimed = errors.New("already claimed")
  ErrInvalidInput   = errors.New("invalid input")
)
