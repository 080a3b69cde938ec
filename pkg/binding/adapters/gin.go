package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toyz/bindgen/pkg/binding"
)

// GinAdapter serves registry documentation through Gin
type GinAdapter struct {
	docs docs
}

// NewGinAdapter creates an adapter over registry, nil means the default registry
func NewGinAdapter(registry *binding.Registry, filter binding.Filter) *GinAdapter {
	return &GinAdapter{docs: newDocs(registry, filter)}
}

// Name returns the adapter name
func (a *GinAdapter) Name() string {
	return "Gin"
}

// Mount registers the documentation routes on an engine or group
func (a *GinAdapter) Mount(r gin.IRoutes) {
	r.GET(BindingsPath, a.list)
	r.GET(BindingPath, a.get)
	r.GET(StubsPath, a.stubs)
}

func (a *GinAdapter) list(c *gin.Context) {
	c.JSON(http.StatusOK, a.docs.list(c.Query("kind")))
}

func (a *GinAdapter) get(c *gin.Context) {
	constructor, status, body := a.docs.get(c.Param("name"), c.Query("module"))
	if status != http.StatusOK {
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, constructor)
}

func (a *GinAdapter) stubs(c *gin.Context) {
	c.String(http.StatusOK, a.docs.stubs(c.Query("prefix")))
}
