// SPDX-License-Identifier: MPL-2.0

// Package collect turns parsed directives into the ordered list of bundle
// items and the output destination.
//
// Relative paths are resolved against the working directory; absolute paths
// are read as given. A read failure aborts collection and no partial result
// is returned.
package collect
