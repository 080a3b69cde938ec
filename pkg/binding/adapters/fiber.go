package adapters

import (
	"github.com/gofiber/fiber/v2"
	"github.com/toyz/bindgen/pkg/binding"
)

// FiberAdapter serves registry documentation through Fiber
type FiberAdapter struct {
	docs docs
}

// NewFiberAdapter creates an adapter over registry, nil means the default registry
func NewFiberAdapter(registry *binding.Registry, filter binding.Filter) *FiberAdapter {
	return &FiberAdapter{docs: newDocs(registry, filter)}
}

// Name returns the adapter name
func (a *FiberAdapter) Name() string {
	return "Fiber"
}

// Mount registers the documentation routes on an app or group
func (a *FiberAdapter) Mount(r fiber.Router) {
	r.Get(BindingsPath, a.list)
	r.Get(BindingPath, a.get)
	r.Get(StubsPath, a.stubs)
}

func (a *FiberAdapter) list(c *fiber.Ctx) error {
	return c.JSON(a.docs.list(c.Query("kind")))
}

func (a *FiberAdapter) get(c *fiber.Ctx) error {
	constructor, status, body := a.docs.get(c.Params("name"), c.Query("module"))
	if status != fiber.StatusOK {
		return c.Status(status).JSON(body)
	}
	return c.JSON(constructor)
}

func (a *FiberAdapter) stubs(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(a.docs.stubs(c.Query("prefix")))
}
