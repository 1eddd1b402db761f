// Package cache provides the bounded, TTL-aware response cache used by the
// proxy endpoint. Instances are created by the caller and injected where
// needed; there is no package-level state.
package cache
