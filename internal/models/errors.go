package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyPosted      = errors.New("already posted today")
	ErrSelfFriend         = errors.New("cannot friend yourself")
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrRequestNotFound    = errors.New("friend request not found")
)
