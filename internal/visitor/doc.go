// Package visitor keeps the page visit log in a storage.Store.
//
// The layout matches what the site writes to local storage:
//
//	nl_visits        JSON array of Visit, newest first, at most MaxVisits entries
//	nl_total_visits  decimal counter, incremented once per recorded visit
//	nl_first_visit   RFC 3339 timestamp of the first recorded visit
//	nl_last_visit    RFC 3339 timestamp of the latest recorded visit
//
// Reads never fail: missing or malformed values load as zero.
package visitor
