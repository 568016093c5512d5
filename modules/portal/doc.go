// Package portal assembles the portal's HTTP surface: the root router with
// the access gate in front of everything, the login landing and one
// placeholder dashboard per role.
package portal
