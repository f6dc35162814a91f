// Package board holds the latest standings snapshot in memory.
//
// The pipeline publishes here after each successful run; the status API and
// the WebSocket feed read from it. Only the most recent snapshot is kept —
// historical persistence is out of scope for this bot.
package board
