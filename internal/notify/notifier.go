// Package notify is the hand-off boundary for freshly created match records.
// Delivery (push, email) is owned by the surrounding system; this package
// only defines the contract and a logging implementation.
package notify

import (
	"context"

	"go.uber.org/zap"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/villy"
)

type Notifier interface {
	MatchCreated(ctx context.Context, rec villy.Record, l listing.Listing)
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) MatchCreated(_ context.Context, rec villy.Record, l listing.Listing) {
	n.log.Info("match record handed off",
		zap.String("villy_id", rec.ID.String()),
		zap.String("seeker_id", rec.SeekerID.String()),
		zap.String("listing_id", rec.ListingID.String()),
		zap.String("listing_title", l.Title),
		zap.String("kind", string(rec.Kind)),
	)
}
