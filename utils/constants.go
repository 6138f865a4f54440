// File: utils/constants.go
package utils

import "time"

// ServiceCachePrefix is the prefix for cached catalog entries.
const ServiceCachePrefix = "svc:"

// ServiceCacheTTL is the time-to-live for cached catalog entries.
const ServiceCacheTTL = 10 * time.Minute

// AvailabilityCachePrefix is the prefix for cached availability-day records.
const AvailabilityCachePrefix = "avail:"

// AvailabilityCacheTTL is the time-to-live for cached availability-day
// records. Entries are also invalidated on every calendar mutation and
// booking commit, so the TTL only bounds staleness after missed
// invalidations.
const AvailabilityCacheTTL = 5 * time.Minute
