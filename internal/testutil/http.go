package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsAdmin injects an admin token user into the request context, bypassing
// the bearer-token middleware.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.TokenUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test Admin",
		Role: "admin",
	})
}

// AsMember injects a member token user with the given ID into the request
// context.
func AsMember(r *http.Request, id primitive.ObjectID) *http.Request {
	return auth.WithTestUser(r, &auth.TokenUser{
		ID:   id.Hex(),
		Name: "Test Member",
		Role: "member",
	})
}
