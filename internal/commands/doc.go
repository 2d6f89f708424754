// Package commands is the surface a front-end calls into. Every input is
// sanitized here before it reaches the settings store or the download
// service, and every error handed back has home directories scrubbed.
package commands
