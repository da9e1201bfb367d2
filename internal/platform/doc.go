package platform

// Package platform contains OS integration glue: opening artwork web pages
// in the system browser and best-effort haptic feedback on devices that have
// a vibrator.
