package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

// PublicHandler renders the public profile page: user header plus the
// owner's active links in position order, styled by the user's theme.
type PublicHandler struct {
	repo  ports.Repository
	links ports.LinkService
	tmpl  *template.Template
}

func NewPublicHandler(repo ports.Repository, links ports.LinkService) *PublicHandler {
	return &PublicHandler{
		repo:  repo,
		links: links,
		tmpl:  template.Must(template.New("profile").Parse(profileTemplate)),
	}
}

type profilePageData struct {
	Name     string
	Username string
	Bio      string
	Avatar   string
	Initial  string
	Style    template.CSS
	Links    []domain.Link
}

func (h *PublicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	// Reserved names are routes, never profiles, regardless of storage state.
	if username == "" || domain.IsReservedUsername(username, false) {
		http.NotFound(w, r)
		return
	}

	user, err := h.repo.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		http.NotFound(w, r)
		return
	}

	links, err := h.links.PublicLinks(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	name := user.DisplayLabel()
	data := profilePageData{
		Name:     name,
		Username: user.Username,
		Bio:      user.Bio,
		Avatar:   user.AvatarURL,
		Initial:  string([]rune(name)[0:1]),
		Style:    themeStyle(domain.ThemeFor(user.Theme)),
		Links:    links,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		slog.Error("profile render failed", "username", username, "error", err)
	}
}

// themeStyle renders the theme into the page's style block. Built here
// because html/template's CSS value filter rejects gradient functions;
// all inputs come from the fixed theme table, never from users.
func themeStyle(t domain.Theme) template.CSS {
	css := fmt.Sprintf(`
  body { margin: 0; min-height: 100vh; background: %s; color: %s;
         font-family: system-ui, sans-serif; display: flex; flex-direction: column; align-items: center;
         padding: 48px 16px; box-sizing: border-box; }
  .avatar { width: 96px; height: 96px; border-radius: 50%%; background: %s;
            display: flex; align-items: center; justify-content: center; font-size: 36px;
            overflow: hidden; margin-bottom: 16px; }
  .avatar img { width: 100%%; height: 100%%; object-fit: cover; }
  h1 { font-size: 24px; margin: 0; }
  .handle { color: %s; font-size: 14px; margin-top: 4px; }
  .bio { color: %s; font-size: 14px; margin-top: 12px; max-width: 24rem; text-align: center; }
  .links { width: 100%%; max-width: 28rem; margin-top: 32px; display: flex; flex-direction: column; gap: 12px; }
  .link { display: flex; align-items: center; gap: 16px; padding: 16px 24px; border-radius: 16px;
          background: %s; color: %s; text-decoration: none; font-weight: 600; }
  .link .arrow { margin-left: auto; color: %s; opacity: .5; }
  .empty { color: %s; text-align: center; padding: 48px 0; }
  .footer { margin-top: auto; padding-top: 48px; font-size: 12px; color: %s; }
  .footer a { color: %s; text-decoration: none; }
`,
		t.Background, t.Text,
		t.Card,
		t.TextMuted,
		t.TextMuted,
		t.Card, t.Text,
		t.TextMuted,
		t.TextMuted,
		t.TextMuted,
		t.Accent)
	return template.CSS(css)
}

const profileTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}} | LinkForge</title>
{{if .Bio}}<meta name="description" content="{{.Bio}}">{{end}}
<style>{{.Style}}</style>
</head>
<body>
<div class="avatar">{{if .Avatar}}<img src="{{.Avatar}}" alt="{{.Name}}">{{else}}{{.Initial}}{{end}}</div>
<h1>{{.Name}}</h1>
<p class="handle">@{{.Username}}</p>
{{if .Bio}}<p class="bio">{{.Bio}}</p>{{end}}
<div class="links">
{{range .Links}}
  <a class="link" href="{{.URL}}" target="_blank" rel="noopener noreferrer" data-link-id="{{.ID}}">
    <span>{{.Icon}}</span><span>{{.Title}}</span><span class="arrow">&rarr;</span>
  </a>
{{else}}
  <div class="empty">No links yet</div>
{{end}}
</div>
<p class="footer"><a href="/">LinkForge</a></p>
<script>
  document.querySelectorAll('[data-link-id]').forEach(function (el) {
    el.addEventListener('click', function () {
      // Best effort; never delays navigation.
      fetch('/clicks', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ linkId: el.dataset.linkId }),
        keepalive: true
      }).catch(function () {});
    });
  });
</script>
</body>
</html>
`
