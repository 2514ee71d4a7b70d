package rooms

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrIndexOutOfRange = errors.New("catalog index out of range")
	ErrClaimNotFound   = errors.New("claim not found")
)
