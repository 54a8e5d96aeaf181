// Package pricing refreshes stored market prices by re-querying the remote
// card database for every row in a catalog.
package pricing
