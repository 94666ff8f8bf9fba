// Package http provides http transport for user accounts and settings
package http

import (
	stdhttp "net/http"

	"codenest/internal/modkit/httpkit"
	"codenest/internal/services/users/domain"
)

// Register mounts account endpoints: public ones on pub behind the IP-keyed
// limiter, authenticated ones on prot behind the user-keyed limiter
func Register(pub, prot httpkit.Router, lim *httpkit.Limiter, acct domain.AccountPort, settings domain.SettingsPort) {
	h := &handlers{acct: acct, settings: settings}

	pub.Post("/login", lim.IP("login", httpkit.JSON(h.login)))
	pub.Post("/create_user", lim.IP("create_user", httpkit.JSON(h.createUser)))

	prot.Delete("/delete_user", lim.User("delete_user", httpkit.Call(h.deleteUser)))
	prot.Put("/change_password", lim.User("change_password", httpkit.JSON(h.changePassword)))
	prot.Put("/change_email", lim.User("change_email", httpkit.JSON(h.changeEmail)))

	prot.Get("/dark_mode", lim.User("dark_mode", httpkit.Call(h.darkMode)))
	prot.Put("/change_dark_mode", lim.User("change_dark_mode", httpkit.JSON(h.changeDarkMode)))
	prot.Get("/get_ai_use", lim.User("get_ai_use", httpkit.Call(h.aiUse)))
	prot.Put("/change_ai_use", lim.User("change_ai_use", httpkit.JSON(h.changeAIUse)))
}

type handlers struct {
	acct     domain.AccountPort
	settings domain.SettingsPort
}

func (h *handlers) login(r *stdhttp.Request, in domain.CredentialsInput) (any, error) {
	return h.acct.Login(r.Context(), in.Email, in.Password)
}

func (h *handlers) createUser(r *stdhttp.Request, in domain.CredentialsInput) (any, error) {
	u, err := h.acct.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(u), nil
}

func (h *handlers) deleteUser(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.acct.Delete(r.Context(), uid); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) changePassword(r *stdhttp.Request, in domain.ChangePasswordInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.acct.ChangePassword(r.Context(), uid, in.Current, in.Next); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) changeEmail(r *stdhttp.Request, in domain.ChangeEmailInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.acct.ChangeEmail(r.Context(), uid, in.Password, in.Email); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) darkMode(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	u, err := h.settings.Get(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	return map[string]bool{"dark_mode": u.DarkMode}, nil
}

func (h *handlers) changeDarkMode(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.settings.SetDarkMode(r.Context(), uid, *in.Enabled); err != nil {
		return nil, err
	}
	return map[string]bool{"dark_mode": *in.Enabled}, nil
}

func (h *handlers) aiUse(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	u, err := h.settings.Get(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	return map[string]bool{"ai_enabled": u.AIEnabled}, nil
}

func (h *handlers) changeAIUse(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.settings.SetAIEnabled(r.Context(), uid, *in.Enabled); err != nil {
		return nil, err
	}
	return map[string]bool{"ai_enabled": *in.Enabled}, nil
}
