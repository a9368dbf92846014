// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the operation, resource and suggestions of a
// failure. Each failure kind also has a catalog Issue with Markdown guidance
// rendered through glamour when diagnostics are enabled.
package issue
