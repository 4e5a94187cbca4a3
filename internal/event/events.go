package event

type Type string

const (
	ItemListedEvent        Type = "ItemListedEvent"
	ListingUpdatedEvent    Type = "ListingUpdatedEvent"
	ListingCancelledEvent  Type = "ListingCancelledEvent"
	ItemSoldEvent          Type = "ItemSoldEvent"
	ItemRecoveredEvent     Type = "ItemRecoveredEvent"
	ProceedsWithdrawnEvent Type = "ProceedsWithdrawnEvent"

	TokenMintedEvent      Type = "TokenMintedEvent"
	TokenTransferredEvent Type = "TokenTransferredEvent"

	FeePercentUpdatedEvent Type = "FeePercentUpdatedEvent"
	MarketPausedEvent      Type = "MarketPausedEvent"
	MarketUnpausedEvent    Type = "MarketUnpausedEvent"
	AdminTransferredEvent  Type = "AdminTransferredEvent"
)

// AuditedTypes are the events the audit indexer persists. Governance
// events (fee, pause, admin) are logged but carry no token action.
var AuditedTypes = []Type{
	ItemListedEvent,
	ListingUpdatedEvent,
	ListingCancelledEvent,
	ItemSoldEvent,
	ItemRecoveredEvent,
	ProceedsWithdrawnEvent,
	TokenMintedEvent,
	TokenTransferredEvent,
}
