package handler

import (
	"time"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/proxy"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/webui"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	WebUI *webui.Handlers
	Proxy *proxy.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(webUI *webui.Handlers, prox *proxy.Handlers) *Repo {
	return &Repo{
		WebUI: webUI,
		Proxy: prox,
		Infra: infra.New(time.Now()),
	}
}
