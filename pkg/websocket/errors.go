package websocket

import "errors"

var (
	ErrInvalidConfig = errors.New("websocket: invalid config")

	ErrConnectionClosed = errors.New("websocket: connection closed")

	ErrPoolFull            = errors.New("websocket: connection pool full")
	ErrPoolClosed          = errors.New("websocket: connection pool closed")
	ErrMaxConnectionsPerIP = errors.New("websocket: max connections per ip exceeded")

	ErrUpgradeFailed = errors.New("websocket: upgrade failed")
)
