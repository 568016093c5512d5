// Package binder decodes HTTP requests into typed structs for handler.Wrap.
package binder
