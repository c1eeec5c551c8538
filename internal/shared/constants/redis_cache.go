package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the Wisata application.
// Pattern: wisata:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour   // destination details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour   // destination listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // ticket catalogs
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics dashboard
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // booking lookups
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "wisata"
)

// ================== DESTINATIONS MODULE ==================

const (
	CACHE_KEY_DESTINATIONS_LIST   = CACHE_PREFIX + ":destinations:list"         // + :page:X:limit:Y:status:Z
	CACHE_KEY_DESTINATION_DETAIL  = CACHE_PREFIX + ":destinations:detail:uuid:" // + destination-id
	CACHE_KEY_DESTINATIONS_ALL    = CACHE_PREFIX + ":destinations:*"
)

// ================== TICKETS MODULE ==================

const (
	CACHE_KEY_TICKETS_BY_DESTINATION = CACHE_PREFIX + ":tickets:destination:uuid:" // + destination-id
	CACHE_KEY_TICKETS_ALL            = CACHE_PREFIX + ":tickets:*"
)

// ================== BOOKINGS MODULE ==================

// Booking drafts are session state, not cache: they live under their own
// prefix and expire on the configured draft TTL.
const (
	KEY_BOOKING_DRAFT = CACHE_PREFIX + ":bookings:draft:session:" // + session-id
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard"
)

// ================== KEY BUILDERS ==================

// DestinationDetailKey builds the cache key for a destination detail lookup.
func DestinationDetailKey(destinationID string) string {
	return CACHE_KEY_DESTINATION_DETAIL + destinationID
}

// TicketCatalogKey builds the cache key for a destination's ticket catalog.
func TicketCatalogKey(destinationID string) string {
	return CACHE_KEY_TICKETS_BY_DESTINATION + destinationID
}

// DestinationListKey builds the cache key for a paginated destination listing.
func DestinationListKey(page, limit int, status string) string {
	return fmt.Sprintf("%s:page:%d:limit:%d:status:%s", CACHE_KEY_DESTINATIONS_LIST, page, limit, status)
}

// BookingDraftKey builds the Redis key holding a session's booking draft.
func BookingDraftKey(sessionID string) string {
	return KEY_BOOKING_DRAFT + sessionID
}
