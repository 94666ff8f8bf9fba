// Package http provides http transport for snippets
package http

import (
	stdhttp "net/http"

	"codenest/internal/modkit/httpkit"
	"codenest/internal/services/snippets/domain"
)

// Register mounts snippet endpoints: the public read on pub behind the
// IP-keyed limiter, everything else on prot behind the user-keyed limiter
func Register(pub, prot httpkit.Router, lim *httpkit.Limiter, snippets domain.SnippetPort) {
	h := &handlers{snippets: snippets}

	pub.Get("/get_public_snippet/{id}", lim.IP("get_public_snippet", httpkit.Call(h.getPublic)))

	prot.Get("/get_snippets", lim.User("get_snippets", httpkit.Call(h.list)))
	prot.Get("/get_user_snippet/{id}", lim.User("get_user_snippet", httpkit.Call(h.getOwned)))
	prot.Post("/create_snippet", lim.User("create_snippet", httpkit.JSON(h.create)))
	prot.Put("/edit_snippet/{id}", lim.User("edit_snippet", httpkit.JSON(h.edit)))
	prot.Put("/toggle_favorite/{id}", lim.User("toggle_favorite", httpkit.Call(h.toggleFavourite)))
	prot.Delete("/delete_snippet/{id}", lim.User("delete_snippet", httpkit.Call(h.delete)))
}

type handlers struct {
	snippets domain.SnippetPort
}

func (h *handlers) getPublic(r *stdhttp.Request) (any, error) {
	return h.snippets.GetPublic(r.Context(), httpkit.Param(r, "id"))
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.snippets.List(r.Context(), uid)
}

func (h *handlers) getOwned(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.snippets.GetOwned(r.Context(), uid, httpkit.Param(r, "id"))
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	sn, err := h.snippets.Create(r.Context(), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(sn), nil
}

func (h *handlers) edit(r *stdhttp.Request, in domain.EditInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.snippets.Edit(r.Context(), uid, httpkit.Param(r, "id"), in)
}

func (h *handlers) toggleFavourite(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	fav, err := h.snippets.ToggleFavourite(r.Context(), uid, httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return map[string]bool{"favourite": fav}, nil
}

func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.snippets.Delete(r.Context(), uid, httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
