// Package platform contains OS integration: browser detection tables,
// the native folder picker, playlist expansion, and filesystem helpers.
package platform
