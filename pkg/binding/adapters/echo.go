package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/toyz/bindgen/pkg/binding"
)

// EchoRouter is satisfied by *echo.Echo and *echo.Group
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// EchoAdapter serves registry documentation through Echo
type EchoAdapter struct {
	docs docs
}

// NewEchoAdapter creates an adapter over registry, nil means the default registry
func NewEchoAdapter(registry *binding.Registry, filter binding.Filter) *EchoAdapter {
	return &EchoAdapter{docs: newDocs(registry, filter)}
}

// Name returns the adapter name
func (a *EchoAdapter) Name() string {
	return "Echo"
}

// Mount registers the documentation routes
func (a *EchoAdapter) Mount(r EchoRouter, middlewares ...echo.MiddlewareFunc) {
	r.GET(BindingsPath, a.list, middlewares...)
	r.GET(BindingPath, a.get, middlewares...)
	r.GET(StubsPath, a.stubs, middlewares...)
}

func (a *EchoAdapter) list(c echo.Context) error {
	return c.JSON(http.StatusOK, a.docs.list(c.QueryParam("kind")))
}

func (a *EchoAdapter) get(c echo.Context) error {
	constructor, status, body := a.docs.get(c.Param("name"), c.QueryParam("module"))
	if status != http.StatusOK {
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, constructor)
}

func (a *EchoAdapter) stubs(c echo.Context) error {
	return c.String(http.StatusOK, a.docs.stubs(c.QueryParam("prefix")))
}
