package constants

// Обменник событий сервиса объявлений
const (
	ExchangeListings     = "listings_exchange"
	ExchangeListingsType = "direct"
)

// Ключи маршрутизации
const (
	RoutingKeyFavoriteAdded   = "favorites.added"
	RoutingKeyFavoriteRemoved = "favorites.removed"
)

// Имена и версии событий. Совпадают с ключами схем в schemas/events.
const (
	EventFavoriteAdded   = "FavoriteAddedEvent"
	EventFavoriteRemoved = "FavoriteRemovedEvent"
	EventVersionV1       = "1.0.0"
)

// Заголовки сообщений
const (
	HeaderTraceID      = "x-trace-id"
	HeaderEventType    = "event_type"
	HeaderEventVersion = "event_version"
)
