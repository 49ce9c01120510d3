// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling for operational
// failures that occur before or outside the scan/parse/assemble
// diagnostic pipeline: a missing root directory, an unreadable root
// file, an output path that cannot be created.
package issue
