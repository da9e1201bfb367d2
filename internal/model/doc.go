package model

// Package model defines domain data structures used across the app: feed
// items, social stat snapshots, and on-screen geometry. Structures are plain
// value types designed for direct use by the UI and the API layer.
