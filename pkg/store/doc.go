// Package store keeps a contact record between the form and preview
// screens. Entries are scoped to a browser session and expire after a TTL;
// nothing is written to disk.
//
// Three backends are provided: an in-process map (the default), Redis, and a
// cookie backend where the record itself travels in a signed cookie.
package store
