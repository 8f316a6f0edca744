package domain

import "errors"

var (
	// ErrDuplicateIdentifier indicates that an identifier is already registered.
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	// ErrUnregisteredSender indicates that the sender identifier does not resolve to a number.
	ErrUnregisteredSender = errors.New("sender is not registered")
	// ErrUnregisteredReceiver indicates that the receiver identifier does not resolve to a number.
	ErrUnregisteredReceiver = errors.New("receiver is not registered")
	// ErrUnsubscribedSender indicates that the sender's number is not currently reachable.
	ErrUnsubscribedSender = errors.New("sender is not subscribed")
)
