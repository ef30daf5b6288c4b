/*
Package dihttp provides HTTP middleware that makes an [ioc.Resolver] available to
request handlers, and handlers that are built by the resolver for each request.

Example:

	package main

	import (
		"net/http"

		"github.com/go-chi/chi/v5"

		"github.com/sectrean/ioc-kit"
		"github.com/sectrean/ioc-kit/dihttp"
	)

	func main() {
		c, err := ioc.NewContainer(
			ioc.WithType(NewService),
			ioc.WithType(NewOrdersHandler),
		)
		if err != nil {
			panic(err)
		}

		mw, err := dihttp.NewContainerMiddleware(c)
		if err != nil {
			panic(err)
		}

		r := chi.NewRouter()
		r.Use(mw)

		// A new *OrdersHandler is resolved for each request.
		r.Method(http.MethodGet, "/orders", dihttp.MustHandler[*OrdersHandler]())

		http.ListenAndServe(":8080", r)
	}
*/
package dihttp
