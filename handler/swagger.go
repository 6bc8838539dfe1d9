package handler

import (
	"net/http"

	"github.com/emzola/bookstore/docs"
	"github.com/swaggo/swag"
)

// swaggerSpecHandler serves the OpenAPI document registered by the docs package.
func (h *Handler) swaggerSpecHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
