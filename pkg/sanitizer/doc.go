// Package sanitizer normalises user identity data received from the identity
// provider before it is matched against or written to the users table.
package sanitizer
