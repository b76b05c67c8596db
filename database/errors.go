package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names. They match the documents written by earlier versions of the service.
const (
	CollectionServices     = "tattooservice"
	CollectionPortfolio    = "portfolioitem"
	CollectionAppointments = "appointment"
	CollectionBotSessions  = "botsession"
)

// IsUnavailable reports whether err means the store could not be reached at all,
// as opposed to a single operation being rejected.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}
