package common

// UnknownStr is the String() form of enum values outside their defined range.
const UnknownStr = "unknown"
