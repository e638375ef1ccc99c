package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for cinebook.
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG  = 24 * time.Hour // movie catalog, rarely changes
	TTL_STATIC_SHORT = 6 * time.Hour  // movie details

	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // show details
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // upcoming show listings

	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics, user bookings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // derived fields on show detail

	TTL_REALTIME_SHORT = 30 * time.Second // seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIES_LIST  = CACHE_PREFIX + ":movies:list"         // + :page:X:limit:Y
	CACHE_KEY_MOVIE_DETAIL = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
)

const (
	TTL_MOVIE_LIST   = TTL_STATIC_SHORT
	TTL_MOVIE_DETAIL = TTL_STATIC_SHORT
)

// ================== SHOWS MODULE ==================

const (
	CACHE_KEY_SHOWS_FOR_MOVIE = CACHE_PREFIX + ":shows:upcoming:movie:" // + movie-id
	CACHE_KEY_SHOW_DETAIL     = CACHE_PREFIX + ":shows:detail:uuid:"    // + show-id

	// Availability is derived from active bookings, keep it very short.
	CACHE_KEY_SHOW_AVAILABILITY = CACHE_PREFIX + ":shows:availability:uuid:" // + show-id
)

const (
	TTL_SHOWS_FOR_MOVIE   = TTL_SEMI_STATIC_QUICK
	TTL_SHOW_DETAIL       = TTL_DYNAMIC_SHORT
	TTL_SHOW_AVAILABILITY = TTL_REALTIME_SHORT
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS = CACHE_PREFIX + ":bookings:user:uuid:" // + user-id
)

const (
	TTL_USER_BOOKINGS = TTL_DYNAMIC_MEDIUM
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_BOOKINGS = CACHE_PREFIX + ":analytics:bookings:overview"
)

const (
	TTL_ANALYTICS_BOOKINGS = TTL_DYNAMIC_MEDIUM
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_MOVIES_ALL   = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_SHOWS_ALL    = CACHE_PREFIX + ":shows:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL = CACHE_PREFIX + ":bookings:*"
	PATTERN_INVALIDATE_ANALYTICS    = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildMovieListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_MOVIES_LIST, page, limit)
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildShowsForMovieKey(movieID string) string {
	return CACHE_KEY_SHOWS_FOR_MOVIE + movieID
}

func BuildShowDetailKey(showID string) string {
	return CACHE_KEY_SHOW_DETAIL + showID
}

func BuildShowAvailabilityKey(showID string) string {
	return CACHE_KEY_SHOW_AVAILABILITY + showID
}

func BuildUserBookingsKey(userID string) string {
	return CACHE_KEY_USER_BOOKINGS + userID
}
