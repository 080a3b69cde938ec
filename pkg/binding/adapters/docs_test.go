package adapters

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toyz/bindgen/pkg/binding"
)

func testRegistry() *binding.Registry {
	reg := binding.NewRegistry()
	noop := func(binding.Kwargs) (any, error) { return struct{}{}, nil }
	reg.MustRegister(binding.Constructor{
		Module: "example.com/app/layers",
		Name:   "RetryLayer",
		Kind:   binding.KindLayer,
		Doc:    "Create a new RetryLayer.",
		Params: []binding.Param{{Name: "jitter", Type: "bool", Default: "False"}},
		New:    noop,
	})
	reg.MustRegister(binding.Constructor{
		Module: "example.com/app/services",
		Name:   "S3Service",
		Kind:   binding.KindService,
		Params: []binding.Param{{Name: "bucket", Type: "str", Required: true}},
		New:    noop,
	})
	return reg
}

func TestDocs_Filter(t *testing.T) {
	d := newDocs(testRegistry(), binding.HasPrefix("example.com/app/layers"))

	assert.Len(t, d.list(""), 1)
	assert.Empty(t, d.list("service"))

	_, status, _ := d.get("S3Service", "")
	assert.Equal(t, http.StatusNotFound, status, "filtered constructors are hidden")

	c, status, _ := d.get("RetryLayer", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "RetryLayer", c.Name)

	assert.NotContains(t, d.stubs(""), "S3Service")
	assert.Empty(t, d.stubs("example.com/app/services"))
}

func TestDocs_SharedName(t *testing.T) {
	reg := testRegistry()
	reg.MustRegister(binding.Constructor{
		Module: "example.com/other/layers",
		Name:   "RetryLayer",
		Kind:   binding.KindLayer,
		New:    func(binding.Kwargs) (any, error) { return nil, nil },
	})
	d := newDocs(reg, nil)

	_, status, body := d.get("RetryLayer", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body.Error, "example.com/other/layers:RetryLayer")

	c, status, _ := d.get("RetryLayer", "example.com/other/layers")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "example.com/other/layers", c.Module)

	_, status, body = d.get("RetryLayer", "example.com/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "binding not found: RetryLayer", body.Error)

	filtered := newDocs(reg, binding.HasPrefix("example.com/app"))
	c, status, _ = filtered.get("RetryLayer", "")
	assert.Equal(t, http.StatusOK, status, "a hidden module does not make the name ambiguous")
	assert.Equal(t, "example.com/app/layers", c.Module)
}

func TestDocs_StubsAreOrdered(t *testing.T) {
	d := newDocs(testRegistry(), nil)

	out := d.stubs("")
	assert.Less(t, strings.Index(out, "class RetryLayer"), strings.Index(out, "class S3Service"))
}

func TestDocs_DefaultRegistry(t *testing.T) {
	d := newDocs(nil, nil)
	assert.Same(t, binding.DefaultRegistry, d.registry)
}
