// Package cache stores named snapshots of HTTP responses for the offline
// controller. A snapshot is addressed by its cache name (for example
// "nurse-notes-v2"); inside it every response is keyed by the request key
// "METHOD URL".
package cache
