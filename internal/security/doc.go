// Package security validates untrusted input before it can reach yt-dlp
// process arguments or disk I/O: URLs (with a literal-address SSRF screen),
// output paths, filename templates, cookie browser names and concurrency
// limits. Every function here is pure and returns the first violation found.
//
// The SSRF screen only inspects the literal host in the URL. Hostnames are
// never resolved, so a public name that resolves to a private address
// (DNS rebinding) is not caught.
package security
