// Package api contains the HTTP handlers for the Arcana API: the AI proxy
// endpoints, authentication, and the content-management CRUD surface. Shared
// request/response helpers live in the shared subpackage, middleware in the
// middleware subpackage.
package api
