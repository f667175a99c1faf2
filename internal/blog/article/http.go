// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-cms/inkwell/internal/platform/request"
	"github.com/inkwell-cms/inkwell/internal/platform/respond"
	"github.com/inkwell-cms/inkwell/pkg/pagination"
	"github.com/inkwell-cms/inkwell/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listArticles)
	router.Get("/{slug}", handler.getArticle)

	// Authenticated readers and authors
	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(middleware.RequireAuth)

		authorRoute.Post("/{slug}/comments", handler.addComment)
		authorRoute.Get("/mine", handler.listMine)
		authorRoute.Post("/", handler.createArticle)
		authorRoute.Patch("/{id}", handler.updateArticle)
		authorRoute.Post("/{id}/publish", handler.publishArticle)
		authorRoute.Delete("/{id}", handler.deleteArticle)
	})
}

func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidQuery(err.Error()))
		return
	}

	filter, err := filterFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articles, total, err := handler.service.ListPublished(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidQuery(err.Error()))
		return
	}

	filter, err := filterFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articles, total, err := handler.service.ListByAuthor(request.Context(), userID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	// Anonymous readers have no viewer identity.
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	article, err := handler.service.GetBySlug(request.Context(), slugValue, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, article)
}

func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Update(request.Context(), userID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) publishArticle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Publish(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), userID, requestutil.Param(request, "slug"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

// filterFromQuery maps list query parameters onto a [Filter].
func filterFromQuery(request *http.Request) (Filter, error) {
	queryValues := request.URL.Query()

	filter := Filter{
		CategorySlug: queryValues.Get("category"),
		TagNames:     query.StringSlice(queryValues.Get("tag")),
		Sort:         queryValues.Get("sort"),
	}

	if raw := queryValues.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return Filter{}, apperr.InvalidQuery("category_id must be a non-negative integer")
		}
		filter.CategoryID = &id
	}

	return filter, nil
}
