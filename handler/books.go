package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/data/dto"
	"github.com/emzola/bookstore/internal/validator"
	"github.com/emzola/bookstore/service"
	"github.com/julienschmidt/httprouter"
)

// bookLookupHandler dispatches every GET below /book. httprouter cannot hold a
// static segment and a named parameter at the same position, so the listing
// endpoints and the id or identifier lookup share one catch-all route.
func (h *Handler) bookLookupHandler(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(httprouter.ParamsFromContext(r.Context()).ByName("path"), "/")
	switch {
	case path == "books":
		h.listFilteredBooksHandler(w, r)
	case path == "api/books":
		h.listBooksHandler(w, r)
	case path == "":
		h.requireAuthenticatedUser(h.listAllBooksHandler)(w, r)
	case strings.Contains(path, "/"):
		h.notFoundResponse(w, r)
	default:
		h.requireAuthenticatedUser(func(w http.ResponseWriter, r *http.Request) {
			h.showBookHandler(w, r, path)
		})(w, r)
	}
}

// @Summary List all books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} data.Book
// @Failure 401
// @Failure 500
// @Router /book [get]
func (h *Handler) listAllBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAllBooks(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// showBookHandler looks a book up by numeric id, or searches titles and
// authors for identifier when it is not a number.
//
// @Summary Show a book by id, or search by title or author
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Book ID or search term"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 401
// @Failure 404
// @Failure 500
// @Router /book/{identifier} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request, identifier string) {
	bookID, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil {
		h.searchBooksHandler(w, r, identifier)
		return
	}
	if bookID < 1 {
		h.badRequestResponse(w, r, errors.New("id must be a positive integer"))
		return
	}
	book, found, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if !found {
		h.recordNotFoundResponse(w, r, "the requested book could not be found")
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) searchBooksHandler(w http.ResponseWriter, r *http.Request, term string) {
	books, err := h.service.SearchBooks(r.Context(), term)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if len(books) == 0 {
		h.recordNotFoundResponse(w, r, "No book found")
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BookRequestBody true "Book to create"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /book [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/book/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Update a book
// @Tags books
// @Accept json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body dto.BookRequestBody true "Replacement values"
// @Success 204
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /book/{id} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var requestBody dto.BookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	_, err = h.service.UpdateBook(r.Context(), bookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.recordNotFoundResponse(w, r, "the requested book could not be found")
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a book
// @Tags books
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /book/{id} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.DeleteBook(r.Context(), bookID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Filter and sort books
// @Description Every matching book, sorted ascending. No pagination.
// @Tags books
// @Produce json
// @Param title query string false "Title contains"
// @Param author query string false "Author contains"
// @Param genre query string false "Genre contains"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "title, author or price"
// @Success 200 {array} data.Book
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /book/books [get]
func (h *Handler) listFilteredBooksHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()
	filter := data.BookFilter{
		Title:    h.readString(qs, "title", ""),
		Author:   h.readString(qs, "author", ""),
		Genre:    h.readString(qs, "genre", ""),
		MinPrice: h.readDecimal(qs, "minPrice", v),
		MaxPrice: h.readDecimal(qs, "maxPrice", v),
		SortBy:   h.readString(qs, "sortBy", ""),
	}
	if !v.Valid() {
		h.validationErrorsResponse(w, r, v.Errors)
		return
	}
	books, err := h.service.ListFilteredBooks(r.Context(), filter)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if len(books) == 0 {
		h.recordNotFoundResponse(w, r, "No books found")
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Search, filter, sort and paginate books
// @Tags books
// @Produce json
// @Param search query string false "Title, author or genre contains"
// @Param genre query string false "Genre equals"
// @Param author query string false "Author contains"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "title, author or price"
// @Param descending query bool false "Sort descending"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} data.BookPage
// @Failure 400
// @Failure 500
// @Router /book/api/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()
	query := data.BookQuery{
		Search:     h.readString(qs, "search", ""),
		Genre:      h.readString(qs, "genre", ""),
		Author:     h.readString(qs, "author", ""),
		MinPrice:   h.readDecimal(qs, "minPrice", v),
		MaxPrice:   h.readDecimal(qs, "maxPrice", v),
		SortBy:     h.readString(qs, "sortBy", ""),
		Descending: h.readBool(qs, "descending", false, v),
		Page:       h.readInt(qs, "page", 1, v),
		PageSize:   h.readInt(qs, "pageSize", 10, v),
	}
	if !v.Valid() {
		h.validationErrorsResponse(w, r, v.Errors)
		return
	}
	page, err := h.service.ListBooks(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, page, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Upload a book cover
// @Tags books
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param cover formData file true "JPEG or PNG image, at most 2MB"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 413
// @Failure 415
// @Failure 503
// @Router /book/{id}/cover [put]
func (h *Handler) updateBookCoverHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxCoverSize+(1<<20))
	err = r.ParseMultipartForm(service.MaxCoverSize)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			h.contentTooLargeResponse(w, r)
		default:
			h.badRequestResponse(w, r, err)
		}
		return
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		h.badRequestResponse(w, r, errors.New("a cover file must be provided"))
		return
	}
	defer file.Close()
	book, err := h.service.UpdateBookCover(r.Context(), bookID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.recordNotFoundResponse(w, r, "the requested book could not be found")
		case errors.Is(err, service.ErrContentTooLarge):
			h.contentTooLargeResponse(w, r)
		case errors.Is(err, service.ErrUnsupportedMediaType):
			h.unsupportedMediaTypeResponse(w, r)
		case errors.Is(err, service.ErrStorageNotConfigured):
			h.serviceUnavailableResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
