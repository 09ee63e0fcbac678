package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/tiendalab/tienda-bff/internal/api/middleware"
)

// RegisterRoutes mounts the resource routes on r. The caller decides the
// prefix (the server mounts them under /api).
func RegisterRoutes(r chi.Router, products *ProductHandler, carts *CartHandler, users *UserHandler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/categories", products.Categories)
		r.Get("/category/{category}", products.ByCategory)
		r.Get("/{id}", products.Get)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
	})

	r.Route("/carts", func(r chi.Router) {
		r.Get("/", carts.List)
		r.Post("/", carts.Create)
		r.Get("/user/{userId}", carts.ByUser)
		r.Get("/{id}", carts.Get)
		r.Put("/{id}", carts.Update)
		r.Delete("/{id}", carts.Delete)
		r.Post("/{id}/products", carts.AddProducts)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.With(middleware.RequireAuthorization).Get("/profile", users.Profile)
		r.Get("/{id}", users.Get)
		r.Put("/{id}", users.Update)
		r.Delete("/{id}", users.Delete)
		r.Post("/{id}/login", users.Login)
	})

	r.Post("/auth/login", users.Login)
}
