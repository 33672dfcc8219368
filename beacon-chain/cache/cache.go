// Package cache includes all important caches for the runtime
// of a beacon node, ensuring the node does not spend
// resources computing duplicate operations such as shuffled
// committees across an epoch.
package cache
