// Package rbac enforces the portal's role-based route policy.
//
// Every user holds exactly one Role: client, advisor or admin. A Policy maps
// URL path prefixes to the role that owns them and lists the paths that are
// reachable without a session. Gate turns a Policy into middleware that runs
// before any route handler:
//
//   - public paths pass through untouched
//   - requests without a valid session are redirected to the login page
//   - a user inside another role's area is redirected to their own dashboard
//   - admins may visit every area
//
// Policies are plain data and can be loaded from YAML:
//
//	src := rbac.NewFileSource("/etc/portal/policy.yaml")
//	policy, err := rbac.LoadPolicy(ctx, src)
//	if err != nil {
//		return err
//	}
//	r.Use(rbac.Gate(policy, sessions, log))
//
// The caller's identity is supplied by a Resolver, which session.Manager
// implements. Allowed requests continue with the request the Resolver
// returned, so whatever it stored in the context reaches the next handler.
package rbac
