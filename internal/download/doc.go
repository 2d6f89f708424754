// Package download runs yt-dlp jobs. Queued jobs are admitted in FIFO
// order under a concurrency limit that can change at runtime.
// Subscribers see every state change of a job in the order it happened.
//
// Requests must already be sanitized; this package never re-validates them.
package download
