// Package abi provides internal arithmetic helpers for C-ABI layout.
//
// # Contents
//
//   - helpers.go: alignment rounding, overflow-checked arithmetic,
//     power-of-two checks and UTF-8 safe truncation
//
// This package is internal to the module.
package abi
