// Package api exposes the ingestion pipeline and catalog inventory over HTTP.
package api
