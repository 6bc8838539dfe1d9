package handler

import (
	"expvar"
	"net/http"

	"github.com/emzola/bookstore/data"
	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/", h.homeHandler)
	router.HandlerFunc(http.MethodGet, "/books", h.requireAuthenticatedUser(h.listAllBooksHandler))

	router.HandlerFunc(http.MethodGet, "/book", h.requireAuthenticatedUser(h.listAllBooksHandler))
	router.HandlerFunc(http.MethodPost, "/book", h.requireRole(data.RoleAdmin, h.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/book/*path", h.bookLookupHandler)
	router.HandlerFunc(http.MethodPut, "/book/:id", h.requireRole(data.RoleAdmin, h.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/book/:id", h.requireRole(data.RoleAdmin, h.deleteBookHandler))
	router.HandlerFunc(http.MethodPut, "/book/:id/cover", h.requireRole(data.RoleAdmin, h.updateBookCoverHandler))

	router.HandlerFunc(http.MethodPost, "/auth/register", h.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/auth/confirm-email", h.confirmEmailHandler)
	router.HandlerFunc(http.MethodPost, "/auth/login", h.loginHandler)
	router.HandlerFunc(http.MethodPost, "/auth/assign-role", h.requireRole(data.RoleAdmin, h.assignRoleHandler))
	router.HandlerFunc(http.MethodPost, "/auth/forgot-password", h.forgotPasswordHandler)
	router.HandlerFunc(http.MethodPost, "/auth/reset-password", h.resetPasswordHandler)

	router.HandlerFunc(http.MethodGet, "/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.swaggerSpecHandler)
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
