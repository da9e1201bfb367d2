package pixelart

// Package pixelart renders deterministic demo sprites from item seeds and
// provides the integer scaling helpers used when presenting low-resolution
// art on high-resolution surfaces.
