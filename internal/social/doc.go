package social

// Package social talks to the social backend (feed listing, reactions,
// comment and view counters) and maintains the per-session stats cache the
// overlay reads from. Optimistic reaction toggles, rollback on failure, and
// debounced view registration all live here.
