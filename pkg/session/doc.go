// Package session keeps the portal's login state in a single encrypted cookie.
//
// A Session records who the user is at the identity provider, the local user
// row it maps to, a role snapshot and the provider tokens. The Codec seals it
// together with an issue and expiry time using the cookie package's AES-GCM
// keys, binding the cookie name as additional data. Nothing is stored on the
// server.
//
// The Manager is the only component that writes the cookie:
//
//	sessions := session.NewFromConfig(cfg, cookies, session.WithLogger(log))
//
//	err := sessions.Create(w, session.Session{...}) // ErrIncompleteSession on partial data
//	s, ok := sessions.Read(r)                       // never errors; ok=false means anonymous
//	sessions.Destroy(w)                             // idempotent
//
// Reading never fails: malformed, tampered, expired or incomplete
// cookies are all treated as "no session". The Manager also implements
// rbac.Resolver so the route gate can authorise requests from the cookie alone.
//
// Only Profile, which omits the tokens, is meant to be serialised into responses.
package session
