// Package handler provides typed HTTP handlers for the portal's JSON endpoints.
//
// A HandlerFunc receives a Context and a request value already bound by the
// configured binders, and returns a Response. Wrap adapts it to
// http.HandlerFunc:
//
//	type devLoginRequest struct {
//		Email string `json:"email"`
//	}
//
//	func devLogin(ctx handler.Context, req devLoginRequest) handler.Response {
//		if req.Email == "" {
//			return handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "email_required"))
//		}
//		return handler.JSON(map[string]any{"success": true})
//	}
//
//	r.Post("/api/auth/dev-login", handler.Wrap(devLogin,
//		handler.WithBinders[handler.Context, devLoginRequest](binder.BindJSON()),
//	))
//
// Responses are JSON (JSON, JSONError) or redirects (Redirect). Error bodies
// always have the shape {"error":{"code":...,"message":...}}; errors that are
// not an HTTPError are rendered as a generic 500 without internal detail.
package handler
