// Package common holds small helpers shared by every spreadgen package.
package common

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"
