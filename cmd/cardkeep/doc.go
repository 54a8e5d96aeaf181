// Command cardkeep ingests scanned trading cards into catalog inventory,
// refreshes market prices, and serves the catalog over HTTP.
package main
