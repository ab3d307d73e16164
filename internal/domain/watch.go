package domain

import "context"

// Notification channels fired by the database triggers.
const (
	ChannelFamilies    = "families_changed"
	ChannelInvitations = "invitations_changed"
)

// ChangeFeed signals whenever a watched collection changes. The returned
// channel coalesces bursts and is closed when ctx is done, which is the
// subscriber's unsubscribe.
type ChangeFeed interface {
	Subscribe(ctx context.Context, channel string) (<-chan struct{}, error)
}

// SpreadsheetBuilder renders a header row plus data rows into a binary
// workbook. Implementations discard the in-memory worksheet after every
// build attempt, success or failure.
type SpreadsheetBuilder interface {
	Build(sheetName string, headers []string, rows [][]string) ([]byte, error)
}
