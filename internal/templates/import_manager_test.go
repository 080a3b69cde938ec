package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManager_GenerateImports(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, NewImportManager().GenerateImports())
	})

	t.Run("single aliased import", func(t *testing.T) {
		im := NewImportManager()
		im.AddPackageImport("retry", "github.com/apache/opendal-layer-retry")
		assert.Equal(t, "import retry \"github.com/apache/opendal-layer-retry\"\n", im.GenerateImports())
	})

	t.Run("grouped and sorted", func(t *testing.T) {
		im := NewImportManager()
		im.AddImport("github.com/toyz/bindgen/pkg/binding")
		im.AddImport("time")
		im.AddPackageImport("retry", "github.com/apache/opendal-layer-retry")
		im.AddImport("time")
		im.AddImport("")

		expected := "import (\n" +
			"\t\"time\"\n" +
			"\n" +
			"\tretry \"github.com/apache/opendal-layer-retry\"\n" +
			"\t\"github.com/toyz/bindgen/pkg/binding\"\n" +
			")\n"
		assert.Equal(t, expected, im.GenerateImports())
		assert.Equal(t, []string{
			"github.com/apache/opendal-layer-retry",
			"github.com/toyz/bindgen/pkg/binding",
			"time",
		}, im.Paths())
	})

	t.Run("alias survives a later plain add", func(t *testing.T) {
		im := NewImportManager()
		im.AddPackageImport("s3", "example.com/opendal-service-s3")
		im.AddImport("example.com/opendal-service-s3")
		assert.Equal(t, "import s3 \"example.com/opendal-service-s3\"\n", im.GenerateImports())
	})
}

func TestIsStandardLibrary(t *testing.T) {
	assert.True(t, isStandardLibrary("time"))
	assert.True(t, isStandardLibrary("net/http"))
	assert.False(t, isStandardLibrary("github.com/toyz/bindgen/pkg/binding"))
	assert.False(t, isStandardLibrary("example.com/x"))
}
