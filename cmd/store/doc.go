// Command store is the Simple Store console and its maintenance CLI.
//
//	store shop                      # interactive console (default)
//	store seed                      # demo customers and products
//	store migrate                   # SQL migrations / Mongo indexes
//	store migrate:rollback
//	store migrate:status
//	store convert 100 SEK EUR
//	store catalog list|add|update|delete
//	store cart export <customer>
//	store cart import <customer>
//	store metrics                   # serve /metrics and /healthz
//
// The backend is chosen by STORE_DRIVER (mongo, sql, memory) or --driver.
package main
